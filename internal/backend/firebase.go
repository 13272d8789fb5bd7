//go:build firebase
// +build firebase

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/google/uuid"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Firebase backs the collaborator contract with Firebase Authentication
// and Cloud Firestore. Email/password sign-in goes through the Identity
// Toolkit REST endpoint because the admin SDK only manages accounts; the
// resulting session is tracked here so state-change listeners fire the way
// a client SDK's would.
type Firebase struct {
	auth      *firebaseauth.Client
	firestore *firestore.Client
	webAPIKey string
	http      *http.Client

	mu           sync.Mutex
	primaryUID   string
	secondaryUID string
	listeners    map[string]func(AuthState)
}

func NewFirebase(ctx context.Context, credentialsFile, webAPIKey string) (*Firebase, error) {
	if strings.TrimSpace(credentialsFile) == "" {
		return nil, errors.New("firebase credentials file is required")
	}
	if strings.TrimSpace(webAPIKey) == "" {
		return nil, errors.New("firebase web api key is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, err
	}

	return &Firebase{
		auth:      authClient,
		firestore: firestoreClient,
		webAPIKey: webAPIKey,
		http:      &http.Client{},
		listeners: map[string]func(AuthState){},
	}, nil
}

func (f *Firebase) Close() error {
	return f.firestore.Close()
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signInEndpoint+"?key="+f.webAPIKey, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK || parsed.LocalID == "" {
		if parsed.Error != nil {
			switch parsed.Error.Message {
			case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
				return "", ErrInvalidCredentials
			}
			return "", fmt.Errorf("sign-in failed: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("sign-in failed: status %d", resp.StatusCode)
	}

	f.mu.Lock()
	f.primaryUID = parsed.LocalID
	listeners := f.copyListeners()
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(AuthState{UID: parsed.LocalID, SignedIn: true})
	}
	return parsed.LocalID, nil
}

func (f *Firebase) SignOut(_ context.Context) error {
	f.mu.Lock()
	f.primaryUID = ""
	listeners := f.copyListeners()
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(AuthState{})
	}
	return nil
}

func (f *Firebase) UpdatePassword(ctx context.Context, newPassword string) error {
	f.mu.Lock()
	uid := f.primaryUID
	f.mu.Unlock()
	if uid == "" {
		return ErrNoSession
	}
	_, err := f.auth.UpdateUser(ctx, uid, (&firebaseauth.UserToUpdate{}).Password(newPassword))
	return err
}

func (f *Firebase) CreateAccount(ctx context.Context, email, password string) (string, error) {
	record, err := f.auth.CreateUser(ctx, (&firebaseauth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		if firebaseauth.IsEmailAlreadyExists(err) {
			return "", ErrEmailInUse
		}
		return "", err
	}
	f.mu.Lock()
	f.secondaryUID = record.UID
	f.mu.Unlock()
	return record.UID, nil
}

func (f *Firebase) ReleaseSecondary(_ context.Context) error {
	// The admin SDK holds no server-side session for created accounts;
	// dropping the tracked UID is the whole cleanup.
	f.mu.Lock()
	f.secondaryUID = ""
	f.mu.Unlock()
	return nil
}

func (f *Firebase) OnStateChange(fn func(AuthState)) func() {
	f.mu.Lock()
	id := uuid.NewString()
	f.listeners[id] = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

func (f *Firebase) copyListeners() []func(AuthState) {
	fns := make([]func(AuthState), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func (f *Firebase) Get(ctx context.Context, collection, id string) (Document, error) {
	snapshot, err := f.firestore.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return NewDecodedDocument(snapshot.Ref.ID, snapshot.DataTo), nil
}

func (f *Firebase) Set(ctx context.Context, collection, id string, data any) error {
	_, err := f.firestore.Collection(collection).Doc(id).Set(ctx, data)
	return err
}

func (f *Firebase) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := f.firestore.Collection(collection).Doc(id).Set(ctx, fields, firestore.MergeAll)
	return err
}

func (f *Firebase) Delete(ctx context.Context, collection, id string) error {
	_, err := f.firestore.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (f *Firebase) QueryEq(ctx context.Context, collection, field string, value any) ([]Document, error) {
	iter := f.firestore.Collection(collection).Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, NewDecodedDocument(snapshot.Ref.ID, snapshot.DataTo))
	}
	return docs, nil
}

func (f *Firebase) ArrayUnion(ctx context.Context, collection, id, field string, values ...any) error {
	_, err := f.firestore.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayUnion(values...)},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (f *Firebase) Subscribe(ctx context.Context, collection string, q Query, fn func([]Document)) (func(), error) {
	query := f.firestore.Collection(collection).Query
	if q.OrderBy != "" {
		direction := firestore.Asc
		if q.Desc {
			direction = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, direction)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	ctx, cancel := context.WithCancel(ctx)
	snapshots := query.Snapshots(ctx)

	go func() {
		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				return
			}
			var docs []Document
			iter := snapshot.Documents
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return
				}
				docs = append(docs, NewDecodedDocument(doc.Ref.ID, doc.DataTo))
			}
			fn(docs)
		}
	}()

	stop := func() {
		snapshots.Stop()
		cancel()
	}
	return stop, nil
}
