package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppConfigValidate(t *testing.T) {
	valid := AppConfig{AuthScheme: AuthSchemeSecret, AppURL: "http://localhost:3000"}
	assert.NoError(t, valid.Validate())

	jwt := AppConfig{AuthScheme: AuthSchemeJWT, Secret: "s3cret", AppURL: "http://localhost:3000"}
	assert.NoError(t, jwt.Validate())

	jwtNoSecret := AppConfig{AuthScheme: AuthSchemeJWT, AppURL: "http://localhost:3000"}
	assert.Error(t, jwtNoSecret.Validate())

	badScheme := AppConfig{AuthScheme: "basic", AppURL: "http://localhost:3000"}
	assert.Error(t, badScheme.Validate())

	noAppURL := AppConfig{AuthScheme: AuthSchemeSecret}
	assert.Error(t, noAppURL.Validate())
}
