package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/google/uuid"
)

// Users is an in-memory customer repository.
type Users struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*dto.UserRead
	// Err, when set, is returned by every method.
	Err error
}

func NewUsers(users ...*dto.UserRead) *Users {
	r := &Users{rows: make(map[uuid.UUID]*dto.UserRead)}
	for _, u := range users {
		r.rows[u.ID] = u
	}
	return r
}

func (r *Users) Create(_ context.Context, c *dto.UserCreate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.rows {
		if u.Username == c.Username || u.IDNumber == c.IDNumber || u.AccountNumber == c.AccountNumber {
			return domain.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	r.rows[c.ID] = &dto.UserRead{
		ID:             c.ID,
		Username:       c.Username,
		FullName:       c.FullName,
		IDNumber:       c.IDNumber,
		AccountNumber:  c.AccountNumber,
		HashedPassword: c.Password,
		Active:         c.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return nil
}

func (r *Users) Get(_ context.Context, id uuid.UUID) (*dto.UserRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Users) find(match func(*dto.UserRead) bool) (*dto.UserRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.rows {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *Users) GetByAccountNumber(_ context.Context, accountNumber string) (*dto.UserRead, error) {
	return r.find(func(u *dto.UserRead) bool { return u.AccountNumber == accountNumber })
}

func (r *Users) GetActiveByAccountNumber(_ context.Context, accountNumber string) (*dto.UserRead, error) {
	return r.find(func(u *dto.UserRead) bool { return u.AccountNumber == accountNumber && u.Active })
}

func (r *Users) exists(match func(*dto.UserRead) bool) (bool, error) {
	_, err := r.find(match)
	if err == domain.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *Users) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return r.exists(func(u *dto.UserRead) bool { return u.Username == username })
}

func (r *Users) ExistsByIDNumber(_ context.Context, idNumber string) (bool, error) {
	return r.exists(func(u *dto.UserRead) bool { return u.IDNumber == idNumber })
}

func (r *Users) ExistsByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	return r.exists(func(u *dto.UserRead) bool { return u.AccountNumber == accountNumber })
}

func (r *Users) SetActive(_ context.Context, accountNumber string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.rows {
		if u.AccountNumber == accountNumber {
			u.Active = active
			return nil
		}
	}
	return domain.ErrNotFound
}

// Staff is an in-memory staff repository.
type Staff struct {
	mu   sync.Mutex
	rows map[string]*dto.StaffRead
}

func NewStaff(staff ...*dto.StaffRead) *Staff {
	r := &Staff{rows: make(map[string]*dto.StaffRead)}
	for _, s := range staff {
		r.rows[s.Username] = s
	}
	return r
}

func (r *Staff) Create(_ context.Context, c *dto.StaffCreate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.Username]; ok {
		return domain.ErrAlreadyExists
	}
	r.rows[c.Username] = &dto.StaffRead{
		ID:             c.ID,
		Username:       c.Username,
		FullName:       c.FullName,
		HashedPassword: c.Password,
		CreatedAt:      time.Now().UTC(),
	}
	return nil
}

func (r *Staff) GetByUsername(_ context.Context, username string) (*dto.StaffRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *Staff) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[username]
	return ok, nil
}

// Transactions is an in-memory transaction repository. ListByUser joins
// parties from Users when set.
type Transactions struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*dto.TransactionRead
	Users *Users
	Err   error
}

func NewTransactions(users *Users, txs ...*dto.TransactionRead) *Transactions {
	r := &Transactions{rows: make(map[uuid.UUID]*dto.TransactionRead), Users: users}
	for _, tx := range txs {
		r.rows[tx.ID] = tx
	}
	return r
}

func (r *Transactions) Create(_ context.Context, c *dto.TransactionCreate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.rows[c.ID] = &dto.TransactionRead{
		ID:                    c.ID,
		SenderID:              c.SenderID,
		ReceiverID:            c.ReceiverID,
		SenderAccountNumber:   c.SenderAccountNumber,
		ReceiverAccountNumber: c.ReceiverAccountNumber,
		Amount:                c.Amount,
		Currency:              c.Currency,
		TargetCurrency:        c.TargetCurrency,
		ConversionRate:        c.ConversionRate,
		ConvertedAmount:       c.ConvertedAmount,
		SwiftCode:             c.SwiftCode,
		PaymentMethod:         c.PaymentMethod,
		Status:                c.Status,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.CreatedAt,
	}
	return nil
}

func (r *Transactions) Get(_ context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	tx, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

func (r *Transactions) ListByStatus(_ context.Context, status string) ([]*dto.TransactionRead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*dto.TransactionRead, 0)
	for _, tx := range r.rows {
		if tx.Status == status {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Transactions) party(ctx context.Context, id uuid.UUID) *dto.PartyRead {
	if r.Users == nil {
		return nil
	}
	u, err := r.Users.Get(ctx, id)
	if err != nil {
		return nil
	}
	return &dto.PartyRead{ID: u.ID, AccountNumber: u.AccountNumber, FullName: u.FullName}
}

func (r *Transactions) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	out := make([]*dto.TransactionRead, 0)
	for _, tx := range r.rows {
		if tx.SenderID == userID || tx.ReceiverID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	r.mu.Unlock()
	for _, tx := range out {
		tx.Sender = r.party(ctx, tx.SenderID)
		tx.Receiver = r.party(ctx, tx.ReceiverID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Transactions) TransitionStatus(_ context.Context, id uuid.UUID, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	tx, ok := r.rows[id]
	if !ok || tx.Status != from {
		return false, nil
	}
	tx.Status = to
	tx.UpdatedAt = time.Now().UTC()
	return true, nil
}

// LoginAttempts is an in-memory audit trail.
type LoginAttempts struct {
	mu   sync.Mutex
	rows []*dto.LoginAttemptCreate
	Err  error
}

func NewLoginAttempts() *LoginAttempts {
	return &LoginAttempts{}
}

func (r *LoginAttempts) Create(_ context.Context, c *dto.LoginAttemptCreate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *c
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *LoginAttempts) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	kept := r.rows[:0]
	var removed int64
	for _, a := range r.rows {
		if a.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.rows = kept
	return removed, nil
}

// All returns a snapshot of the recorded attempts.
func (r *LoginAttempts) All() []dto.LoginAttemptCreate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dto.LoginAttemptCreate, 0, len(r.rows))
	for _, a := range r.rows {
		out = append(out, *a)
	}
	return out
}
