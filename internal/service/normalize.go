package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmespath-community/go-jmespath"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/ports"
)

// userShapeExpr folds the backend's user shapes into the console's User fields.
// The display name arrives as fullName, full_name or name; the first non-empty wins.
const userShapeExpr = `{
	id: id,
	name: fullName || full_name || name,
	email: email,
	role: role,
	profileImage: profileImage || profile_image
}`

var errMissingUser = errors.New("response carried no user object")

// NormalizeUser converts a raw backend user object into a domain User.
// Role is copied verbatim; unknown values are left for the authorization gate to reject.
func NormalizeUser(raw ports.RawUser) (domainauth.User, error) {
	if raw == nil {
		return domainauth.User{}, errMissingUser
	}

	shaped, err := jmespath.Search(userShapeExpr, map[string]any(raw))
	if err != nil {
		return domainauth.User{}, fmt.Errorf("normalize user: %w", err)
	}

	data, err := json.Marshal(shaped)
	if err != nil {
		return domainauth.User{}, fmt.Errorf("normalize user: %w", err)
	}

	var u domainauth.User
	if err := json.Unmarshal(data, &u); err != nil {
		return domainauth.User{}, fmt.Errorf("normalize user: %w", err)
	}
	return u, nil
}
