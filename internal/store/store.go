package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"brightsteps/backend/internal/backend"
	"brightsteps/backend/internal/models"
)

// Collection names as the backend stores them. Users is read with point
// gets and queries only; the other fourteen are kept live-synced.
const (
	ColUsers               = "users"
	ColStudents            = "students"
	ColStaff               = "staff"
	ColParents             = "parents"
	ColSessionLogs         = "sessionLogs"
	ColShopItems           = "shopItems"
	ColMilestoneRecords    = "milestoneRecords"
	ColMilestoneTemplates  = "milestoneTemplates"
	ColPayments            = "payments"
	ColNotices             = "notices"
	ColSystemLogs          = "systemLogs"
	ColOrders              = "orders"
	ColStaffApplications   = "staffApplications"
	ColStudentApplications = "studentApplications"
	ColSettings            = "settings"
)

// settingsDocID is the id of the singleton settings document.
const settingsDocID = "global"

const (
	sessionLogLimit = 100
	systemLogLimit  = 200
)

var (
	ErrNotSignedIn     = errors.New("no user is signed in")
	ErrRoleMismatch    = errors.New("account exists but not for the selected role")
	ErrProfileNotFound = errors.New("no profile found for this account")
	ErrEmailExists     = errors.New("an account with this email already exists")
	ErrEmptyCart       = errors.New("cart is empty")
)

// View modes the store switches between as the session changes.
const (
	ViewLanding = "landing"
	ViewApp     = "app"
)

// Store is the single source of truth for session identity and every
// server-synced collection, and the sole point of contact with the remote
// backend. Collections are written only by subscription callbacks; every
// emission fully replaces the local copy. Actions never mutate collections
// directly — their effects arrive through the next emission.
type Store struct {
	backend  backend.Service
	validate *validator.Validate

	mu         sync.RWMutex
	user       *models.User
	loggedIn   bool
	activeView string

	students            []models.Student
	staff               []models.Staff
	parents             []models.Parent
	sessionLogs         []models.SessionLog
	shopItems           []models.ShopItem
	milestoneRecords    []models.MilestoneRecord
	milestoneTemplates  []models.MilestoneTemplate
	payments            []models.Payment
	notices             []models.Notice
	systemLogs          []models.SystemLog
	orders              []models.Order
	staffApplications   []models.StaffApplication
	studentApplications []models.StudentApplication
	settings            models.Settings

	cart          []models.CartItem
	notifications []Notification
	toastDuration time.Duration

	watchers   map[int]chan string
	nextWatch  int
	stops      []func()
	cancelAuth func()
}

func New(svc backend.Service) *Store {
	return &Store{
		backend:       svc,
		validate:      validator.New(),
		activeView:    ViewLanding,
		toastDuration: 5 * time.Second,
		watchers:      map[int]chan string{},
	}
}

// Start registers the auth-state listener and opens the fourteen live
// subscriptions. It must be called once before any action.
func (s *Store) Start(ctx context.Context) error {
	s.cancelAuth = s.backend.OnStateChange(func(state backend.AuthState) {
		s.handleAuthState(ctx, state)
	})

	if err := s.openSubscriptions(ctx); err != nil {
		s.Stop()
		return err
	}
	return nil
}

// Stop tears down all subscriptions and the auth listener.
func (s *Store) Stop() {
	if s.cancelAuth != nil {
		s.cancelAuth()
		s.cancelAuth = nil
	}
	for _, stop := range s.stops {
		stop()
	}
	s.stops = nil
}

// handleAuthState is the single path by which session state changes. A
// signed-in credential without a matching profile document is treated as
// orphaned: no local session is established.
func (s *Store) handleAuthState(ctx context.Context, state backend.AuthState) {
	if !state.SignedIn {
		s.mu.Lock()
		s.user = nil
		s.loggedIn = false
		s.activeView = ViewLanding
		s.mu.Unlock()
		s.broadcast("session")
		return
	}

	doc, err := s.backend.Get(ctx, ColUsers, state.UID)
	if err != nil {
		log.Printf("[session] profile lookup failed for uid=%s: %v", state.UID, err)
		return
	}
	var user models.User
	if err := doc.DataTo(&user); err != nil {
		log.Printf("[session] profile decode failed for uid=%s: %v", state.UID, err)
		return
	}
	user.ID = state.UID

	s.mu.Lock()
	s.user = &user
	s.loggedIn = true
	s.activeView = ViewApp
	s.mu.Unlock()
	s.broadcast("session")
}

func (s *Store) openSubscriptions(ctx context.Context) error {
	byName := backend.Query{OrderBy: "fullName"}

	if err := subscribeInto(ctx, s, ColStudents, byName, func(items []models.Student) { s.students = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColStaff, byName, func(items []models.Staff) { s.staff = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColParents, backend.Query{OrderBy: "name"}, func(items []models.Parent) { s.parents = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColSessionLogs, backend.Query{OrderBy: "createdAt", Desc: true, Limit: sessionLogLimit}, func(items []models.SessionLog) { s.sessionLogs = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColShopItems, backend.Query{OrderBy: "name"}, func(items []models.ShopItem) { s.shopItems = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColMilestoneRecords, backend.Query{OrderBy: "createdAt", Desc: true}, func(items []models.MilestoneRecord) { s.milestoneRecords = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColMilestoneTemplates, backend.Query{OrderBy: "minAge"}, func(items []models.MilestoneTemplate) { s.milestoneTemplates = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColPayments, backend.Query{OrderBy: "createdAt", Desc: true}, func(items []models.Payment) { s.payments = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColNotices, backend.Query{OrderBy: "createdAt", Desc: true}, func(items []models.Notice) { s.notices = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColSystemLogs, backend.Query{OrderBy: "createdAt", Desc: true, Limit: systemLogLimit}, func(items []models.SystemLog) { s.systemLogs = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColOrders, backend.Query{OrderBy: "createdAt", Desc: true}, func(items []models.Order) { s.orders = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColStaffApplications, backend.Query{OrderBy: "createdAt", Desc: true}, func(items []models.StaffApplication) { s.staffApplications = items }); err != nil {
		return err
	}
	if err := subscribeInto(ctx, s, ColStudentApplications, backend.Query{OrderBy: "createdAt", Desc: true}, func(items []models.StudentApplication) { s.studentApplications = items }); err != nil {
		return err
	}

	// Settings is a singleton document; the subscription still delivers a
	// collection snapshot, from which the "global" doc is picked.
	stop, err := s.backend.Subscribe(ctx, ColSettings, backend.Query{}, func(docs []backend.Document) {
		for _, doc := range docs {
			if doc.ID != settingsDocID {
				continue
			}
			var settings models.Settings
			if err := doc.DataTo(&settings); err != nil {
				log.Printf("[sync] decode settings: %v", err)
				return
			}
			s.mu.Lock()
			s.settings = settings
			s.mu.Unlock()
			s.broadcast(ColSettings)
		}
	})
	if err != nil {
		return err
	}
	s.stops = append(s.stops, stop)
	return nil
}

// subscribeInto opens one collection subscription whose callback replaces
// the local copy wholesale. assign runs with the store lock held.
func subscribeInto[T any](ctx context.Context, s *Store, collection string, q backend.Query, assign func([]T)) error {
	stop, err := s.backend.Subscribe(ctx, collection, q, func(docs []backend.Document) {
		items := make([]T, 0, len(docs))
		for _, doc := range docs {
			var item T
			if err := doc.DataTo(&item); err != nil {
				log.Printf("[sync] decode %s/%s: %v", collection, doc.ID, err)
				continue
			}
			items = append(items, item)
		}
		s.mu.Lock()
		assign(items)
		s.mu.Unlock()
		s.broadcast(collection)
	})
	if err != nil {
		return err
	}
	s.stops = append(s.stops, stop)
	return nil
}

// Watch returns a channel that receives the name of a collection (or
// "session") each time its local copy is replaced. Slow readers miss
// emissions rather than block the sync path.
func (s *Store) Watch(ctx context.Context) <-chan string {
	ch := make(chan string, 32)
	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}()
	return ch
}

func (s *Store) broadcast(collection string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- collection:
		default:
		}
	}
}

// fail converts an action failure into a user-facing toast and hands the
// error back so callers can gate UI state. No retry, no backoff.
func (s *Store) fail(action, message string, err error) error {
	log.Printf("[%s] %v", action, err)
	s.Notify(NotifyError, message)
	return err
}

func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *Store) ActiveView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeView
}

func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Student(nil), s.students...)
}

func (s *Store) Staff() []models.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Staff(nil), s.staff...)
}

func (s *Store) Parents() []models.Parent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Parent(nil), s.parents...)
}

func (s *Store) SessionLogs() []models.SessionLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SessionLog(nil), s.sessionLogs...)
}

func (s *Store) ShopItems() []models.ShopItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ShopItem(nil), s.shopItems...)
}

func (s *Store) MilestoneRecords() []models.MilestoneRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MilestoneRecord(nil), s.milestoneRecords...)
}

func (s *Store) MilestoneTemplates() []models.MilestoneTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MilestoneTemplate(nil), s.milestoneTemplates...)
}

func (s *Store) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Payment(nil), s.payments...)
}

func (s *Store) Notices() []models.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Notice(nil), s.notices...)
}

func (s *Store) SystemLogs() []models.SystemLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SystemLog(nil), s.systemLogs...)
}

func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *Store) StaffApplications() []models.StaffApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StaffApplication(nil), s.staffApplications...)
}

func (s *Store) StudentApplications() []models.StudentApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StudentApplication(nil), s.studentApplications...)
}

func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}
