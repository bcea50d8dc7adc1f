// Package memory provides in-memory implementations of the service store
// interfaces. The service and route tests run against it; it mirrors the
// conditional-decrement semantics of the SQL stores but keeps no rollback,
// so a failed unit of work must not leave partial writes behind in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
)

type Store struct {
	mu   sync.Mutex // guards the maps
	txMu sync.Mutex // serializes units of work

	users       map[uint]models.User
	properties  map[uint]models.Property
	rooms       map[uint]models.Room
	bookings    map[uint]models.Booking
	earnings    map[uint]models.Earning
	withdrawals map[uint]models.Withdrawal

	nextID uint
}

func New() *Store {
	return &Store{
		users:       make(map[uint]models.User),
		properties:  make(map[uint]models.Property),
		rooms:       make(map[uint]models.Room),
		bookings:    make(map[uint]models.Booking),
		earnings:    make(map[uint]models.Earning),
		withdrawals: make(map[uint]models.Withdrawal),
	}
}

// Stores returns the bundle the services expect.
func (s *Store) Stores() services.Stores {
	return services.Stores{
		Users:       s,
		Properties:  s,
		Bookings:    s,
		Earnings:    s,
		Withdrawals: s,
	}
}

// RunInTx serializes the unit of work. Individual operations stay atomic
// under the data mutex; ordering across whole units comes from txMu.
func (s *Store) RunInTx(ctx context.Context, fn func(services.Stores) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Stores())
}

func (s *Store) allocID() uint {
	s.nextID++
	return s.nextID
}

func notFound(what string) error {
	return fmt.Errorf("%s not found: %w", what, services.ErrNotFound)
}

// Seed helpers for tests.

func (s *Store) SeedUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.allocID()
	s.users[user.ID] = user
	return user
}

// SeedProperty stores the property and its rooms, assigning IDs throughout.
func (s *Store) SeedProperty(property models.Property) models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	property.ID = s.allocID()
	for i := range property.Rooms {
		property.Rooms[i].ID = s.allocID()
		property.Rooms[i].PropertyID = property.ID
		s.rooms[property.Rooms[i].ID] = property.Rooms[i]
	}
	s.properties[property.ID] = property
	return property
}

func (s *Store) SeedEarning(earning models.Earning) models.Earning {
	s.mu.Lock()
	defer s.mu.Unlock()
	earning.ID = s.allocID()
	if earning.CreatedAt.IsZero() {
		earning.CreatedAt = time.Now()
	}
	s.earnings[earning.ID] = earning
	return earning
}

func (s *Store) SeedWithdrawal(withdrawal models.Withdrawal) models.Withdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()
	withdrawal.ID = s.allocID()
	s.withdrawals[withdrawal.ID] = withdrawal
	return withdrawal
}

// RemoveRoom drops a room outright, as a property owner deleting a listing's
// room does.
func (s *Store) RemoveRoom(roomID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}

// RoomAvailability reads the current counter for assertions.
func (s *Store) RoomAvailability(roomID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[roomID].AvailableRooms
}

// EarningByBooking exposes the earning linked to a booking, if any.
func (s *Store) EarningByBooking(bookingID uint) (models.Earning, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.earnings {
		if e.BookingID == bookingID {
			return e, true
		}
	}
	return models.Earning{}, false
}

// EarningByID reads an earning for assertions.
func (s *Store) EarningByID(id uint) (models.Earning, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.earnings[id]
	return e, ok
}

// UserStore

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &user, nil
}

// PropertyStore

func (s *Store) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	property, ok := s.properties[id]
	if !ok {
		return nil, notFound("property")
	}
	rooms := []models.Room{}
	for _, room := range s.rooms {
		if room.PropertyID == id {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	property.Rooms = rooms
	return &property, nil
}

func (s *Store) GetRoom(ctx context.Context, propertyID, roomID uint) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok || room.PropertyID != propertyID {
		return nil, notFound("room")
	}
	return &room, nil
}

func (s *Store) ReserveRoom(ctx context.Context, roomID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return notFound("room")
	}
	if room.AvailableRooms <= 0 {
		return services.ErrNoVacancy
	}
	room.AvailableRooms--
	s.rooms[roomID] = room
	return nil
}

// ReleaseRoom gives one unit back. Releasing a room that no longer exists is
// a no-op, matching the SQL store.
func (s *Store) ReleaseRoom(ctx context.Context, roomID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil
	}
	room.AvailableRooms++
	s.rooms[roomID] = room
	return nil
}

// BookingStore

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking.ID = s.allocID()
	booking.CreatedAt = time.Now()
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *Store) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return &booking, nil
}

func (s *Store) ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := []models.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

func (s *Store) SaveBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; !ok {
		return notFound("booking")
	}
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, id)
	return nil
}

// EarningStore

func (s *Store) CreateEarning(ctx context.Context, earning *models.Earning) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	earning.ID = s.allocID()
	if earning.CreatedAt.IsZero() {
		earning.CreatedAt = time.Now()
	}
	s.earnings[earning.ID] = *earning
	return nil
}

func (s *Store) DeleteEarningByBooking(ctx context.Context, bookingID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.earnings {
		if e.BookingID == bookingID {
			delete(s.earnings, id)
		}
	}
	return nil
}

func (s *Store) ListEarningsByUser(ctx context.Context, userID uint) ([]models.Earning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	earnings := []models.Earning{}
	for _, e := range s.earnings {
		if e.UserID == userID {
			earnings = append(earnings, e)
		}
	}
	sort.Slice(earnings, func(i, j int) bool { return earnings[i].ID < earnings[j].ID })
	return earnings, nil
}

func (s *Store) SumEarningsByUser(ctx context.Context, userID uint, approvedOnly bool) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, e := range s.earnings {
		if e.UserID != userID {
			continue
		}
		if approvedOnly && e.Status != models.EarningStatusApproved {
			continue
		}
		total += e.Amount
	}
	return total, nil
}

func (s *Store) PromotePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, e := range s.earnings {
		if e.Status == models.EarningStatusPending && !e.CreatedAt.After(cutoff) {
			e.Status = models.EarningStatusApproved
			s.earnings[id] = e
			count++
		}
	}
	return count, nil
}

// WithdrawalStore

func (s *Store) CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	withdrawal.ID = s.allocID()
	withdrawal.CreatedAt = time.Now()
	s.withdrawals[withdrawal.ID] = *withdrawal
	return nil
}

func (s *Store) GetWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	withdrawal, ok := s.withdrawals[id]
	if !ok {
		return nil, notFound("withdrawal")
	}
	return &withdrawal, nil
}

func (s *Store) ListWithdrawalsByUser(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	withdrawals := []models.Withdrawal{}
	for _, w := range s.withdrawals {
		if w.UserID == userID {
			withdrawals = append(withdrawals, w)
		}
	}
	sort.Slice(withdrawals, func(i, j int) bool { return withdrawals[i].ID < withdrawals[j].ID })
	return withdrawals, nil
}

func (s *Store) ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	withdrawals := []models.Withdrawal{}
	for _, w := range s.withdrawals {
		withdrawals = append(withdrawals, w)
	}
	sort.Slice(withdrawals, func(i, j int) bool { return withdrawals[i].ID < withdrawals[j].ID })
	return withdrawals, nil
}

func (s *Store) SaveWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.withdrawals[withdrawal.ID]; !ok {
		return notFound("withdrawal")
	}
	s.withdrawals[withdrawal.ID] = *withdrawal
	return nil
}

func (s *Store) SumNonRejectedByUser(ctx context.Context, userID uint) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, w := range s.withdrawals {
		if w.UserID == userID && w.Status != models.WithdrawalStatusRejected {
			total += w.Amount
		}
	}
	return total, nil
}
