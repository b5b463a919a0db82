// Package jwt signs and verifies the session tokens issued by the API.
package jwt

import (
	"github.com/Laisky/errors/v2"
	gjwt "github.com/Laisky/go-utils/v6/jwt"
)

var Instance gjwt.JWT

func Initialize(secret []byte) (err error) {
	if Instance, err = gjwt.New(
		gjwt.WithSecretByte(secret),
		gjwt.WithSignMethod(gjwt.SignMethodHS256),
	); err != nil {
		return errors.Wrap(err, "new jwt")
	}

	return nil
}
