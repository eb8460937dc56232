package sqlite

import domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"

func domainUser() domainauth.User {
	return domainauth.User{ID: "3", Name: "Dev", Email: "dev@example.com", Role: domainauth.RoleDeveloper}
}
