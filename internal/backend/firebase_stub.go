//go:build !firebase
// +build !firebase

package backend

import (
	"context"
	"errors"
)

func NewFirebase(_ context.Context, _, _ string) (Service, error) {
	return nil, errors.New("firebase backend unavailable in this build; compile backend with -tags firebase")
}
