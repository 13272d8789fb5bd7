package backend

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrNotFound           = errors.New("document not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrNoSession          = errors.New("no signed-in session")
)

// AuthState reports the principal the backend currently considers signed
// in. A zero UID with SignedIn=false means signed out.
type AuthState struct {
	UID      string
	SignedIn bool
}

// Auth is the credential side of the backend collaborator. Account
// creation runs on a logically separate secondary session so the primary
// session survives staff/student registration; callers must always release
// the secondary session when done with it.
type Auth interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context) error
	UpdatePassword(ctx context.Context, newPassword string) error
	CreateAccount(ctx context.Context, email, password string) (string, error)
	ReleaseSecondary(ctx context.Context) error

	// OnStateChange registers a listener for sign-in/sign-out transitions.
	// The returned function cancels the registration.
	OnStateChange(fn func(AuthState)) func()
}

// Query shapes a collection subscription: server-side ordering by one
// named field and an optional result-count limit.
type Query struct {
	OrderBy string
	Desc    bool
	Limit   int
}

// Document is one decoded-on-demand document snapshot.
type Document struct {
	ID     string
	decode func(dst any) error
}

func (d Document) DataTo(dst any) error {
	if d.decode == nil {
		return ErrNotFound
	}
	return d.decode(dst)
}

// NewDocument wraps raw JSON document data; used by the in-memory backend
// and by tests.
func NewDocument(id string, raw json.RawMessage) Document {
	data := append(json.RawMessage(nil), raw...)
	return Document{ID: id, decode: func(dst any) error {
		return json.Unmarshal(data, dst)
	}}
}

// NewDecodedDocument wraps an existing decode function (e.g. a Firestore
// snapshot's DataTo).
func NewDecodedDocument(id string, decode func(dst any) error) Document {
	return Document{ID: id, decode: decode}
}

// Documents is the document-store side of the backend collaborator.
//
// Subscribe opens a live snapshot listener: fn receives the full, ordered
// result set on registration and again after every change, and must treat
// each delivery as authoritative and total. Merge has upsert semantics and
// touches only the named top-level fields. ArrayUnion atomically appends
// values to an array field, skipping elements already present.
type Documents interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, data any) error
	Merge(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	QueryEq(ctx context.Context, collection, field string, value any) ([]Document, error)
	ArrayUnion(ctx context.Context, collection, id, field string, values ...any) error
	Subscribe(ctx context.Context, collection string, q Query, fn func([]Document)) (func(), error)
}

// Service is the full backend collaborator contract the store consumes.
type Service interface {
	Auth
	Documents
}
