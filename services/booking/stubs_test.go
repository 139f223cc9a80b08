package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingRepo "nearfix/database/repository/booking"
	providerRepo "nearfix/database/repository/provider"
	userRepo "nearfix/database/repository/user"
	"nearfix/models"
	"nearfix/realtime"

	"go.uber.org/zap"
)

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *memBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copy := b
	return &copy, nil
}

func (r *memBookingRepo) UpdateVersioned(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := b.Version
	stored, ok := r.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if stored.Version != current {
		return bookingRepo.ErrVersionConflict
	}
	b.Version = current + 1
	r.bookings[b.ID] = *b
	return nil
}

func (r *memBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) LatestActiveBetween(customerID, providerID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Booking
	for _, b := range r.bookings {
		b := b
		if b.CustomerID != customerID || b.ProviderID != providerID {
			continue
		}
		if b.Status != models.BookingPending && b.Status != models.BookingAccepted {
			continue
		}
		if latest == nil || b.CreatedAt.After(latest.CreatedAt) {
			latest = &b
		}
	}
	return latest, nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []models.Message
}

func (r *memMessageRepo) Create(m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *memMessageRepo) ListBetween(userID, otherUserID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.messages {
		if (m.Sender == userID && m.Receiver == otherUserID) || (m.Sender == otherUserID && m.Receiver == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) MarkConversationRead(receiverID, senderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].Receiver == receiverID && r.messages[i].Sender == senderID {
			r.messages[i].IsRead = true
		}
	}
	return nil
}

func (r *memMessageRepo) UnreadCount(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.Receiver == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *memMessageRepo) ListConversations(userID string) ([]models.ConversationSummary, error) {
	return nil, nil
}

func (r *memMessageRepo) byType(msgType string) []models.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.messages {
		if m.MessageType == msgType {
			out = append(out, m)
		}
	}
	return out
}

type memProviderRepo struct {
	mu        sync.Mutex
	providers map[string]models.Provider
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{providers: make(map[string]models.Provider)}
}

func (r *memProviderRepo) Create(p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = *p
	return nil
}

func (r *memProviderRepo) GetByID(id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	copy := p
	return &copy, nil
}

func (r *memProviderRepo) GetByUserID(userID string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.UserID == userID {
			copy := p
			return &copy, nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (r *memProviderRepo) IncrementEarnings(id string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Earnings += amount
	r.providers[id] = p
	return nil
}

func (r *memProviderRepo) UpdateRating(id string, averageRating float64, totalReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.AverageRating = averageRating
	p.TotalReviews = totalReviews
	r.providers[id] = p
	return nil
}

func (r *memProviderRepo) earnings(id string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[id].Earnings
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	copy := u
	return &copy, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copy := u
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Update(u *models.User) error {
	return r.Create(u)
}

func (r *memUserRepo) SetFCMToken(id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.FCMToken = token
	r.users[id] = u
	return nil
}

type memRequirementRepo struct {
	mu           sync.Mutex
	requirements map[string]models.Requirement
}

func newMemRequirementRepo() *memRequirementRepo {
	return &memRequirementRepo{requirements: make(map[string]models.Requirement)}
}

func (r *memRequirementRepo) Create(req *models.Requirement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requirements[req.ID] = *req
	return nil
}

func (r *memRequirementRepo) GetByID(id string) (*models.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requirements[id]
	if !ok {
		return nil, nil
	}
	copy := req
	return &copy, nil
}

func (r *memRequirementRepo) ListOpenByCategories(categories []string) ([]models.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Requirement
	for _, req := range r.requirements {
		if req.Status != models.RequirementOpen {
			continue
		}
		for _, c := range categories {
			if req.Category == c {
				out = append(out, req)
				break
			}
		}
	}
	return out, nil
}

func (r *memRequirementRepo) SetStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requirements[id]
	if !ok {
		return nil
	}
	req.Status = status
	r.requirements[id] = req
	return nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews []models.Review
}

func (r *memReviewRepo) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *memReviewRepo) ProviderStats(providerID string) (int, float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int
	var sum float64
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			count++
			sum += float64(rv.Rating)
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, sum / float64(count), nil
}

type stubNotifier struct {
	mu     sync.Mutex
	pushes []string // recipient ids, in order
}

func (n *stubNotifier) Push(ctx context.Context, userID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, userID)
	return nil
}

// testEnv bundles the service under test with its in-memory repos.
type testEnv struct {
	svc       *DefaultBookingService
	bookings  *memBookingRepo
	messages  *memMessageRepo
	providers *memProviderRepo
	users     *memUserRepo
	reqs      *memRequirementRepo
	reviews   *memReviewRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		bookings:  newMemBookingRepo(),
		messages:  &memMessageRepo{},
		providers: newMemProviderRepo(),
		users:     newMemUserRepo(),
		reqs:      newMemRequirementRepo(),
		reviews:   &memReviewRepo{},
	}
	env.svc = &DefaultBookingService{
		Bookings:     env.bookings,
		Messages:     env.messages,
		Providers:    env.providers,
		Users:        env.users,
		Requirements: env.reqs,
		Reviews:      env.reviews,
		Hub:          realtime.NewHub(zap.NewNop()),
		Logger:       zap.NewNop(),
	}

	env.users.Create(&models.User{ID: "cust-1", FullName: "Asha Rao", Email: "asha@example.com", Role: models.RoleCustomer})
	env.users.Create(&models.User{ID: "prov-user-1", FullName: "Ravi Kumar", Email: "ravi@example.com", Role: models.RoleProvider})
	env.providers.Create(&models.Provider{
		ID:     "prov-1",
		UserID: "prov-user-1",
		Services: []models.ProviderService{
			{Category: "Plumbing", Description: "Pipes and fittings", PriceRange: "₹300-₹800"},
		},
	})
	return env
}

// seedBooking inserts a booking directly, bypassing the service.
func (e *testEnv) seedBooking(t *testing.T, b models.Booking) *models.Booking {
	t.Helper()
	if b.ID == "" {
		b.ID = "bk-1"
	}
	if b.CustomerID == "" {
		b.CustomerID = "cust-1"
	}
	if b.ProviderID == "" {
		b.ProviderID = "prov-1"
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentPending
	}
	if b.Service.Category == "" {
		b.Service.Category = "Plumbing"
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = time.Now().Add(72 * time.Hour)
	}
	if b.BookingTime == "" {
		b.BookingTime = "10:00"
	}
	if err := e.bookings.Create(&b); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return &b
}
