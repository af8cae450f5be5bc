package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/repository"
	loginattemptrepo "github.com/amirasaad/payportal/pkg/repository/loginattempt"
	staffrepo "github.com/amirasaad/payportal/pkg/repository/staff"
	transactionrepo "github.com/amirasaad/payportal/pkg/repository/transaction"
	userrepo "github.com/amirasaad/payportal/pkg/repository/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "username", "full_name", "id_number", "account_number",
	"password", "active", "created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[userrepo.Repository](uow)
	require.NoError(t, err)

	create := &dto.UserCreate{
		ID:            uuid.New(),
		Username:      "jane_doe",
		FullName:      "Jane Doe",
		IDNumber:      "9001015009087",
		AccountNumber: "1234567890",
		Password:      "hash",
		Active:        true,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.Create(context.Background(), create))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()
	assert.Error(t, repo.Create(context.Background(), create))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetActiveByAccountNumber(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[userrepo.Repository](uow)
	require.NoError(t, err)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*account_number = \$1 AND active = \$2`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id, "jane_doe", "Jane Doe", "9001015009087", "1234567890", "hash", true, now, now))

	u, err := repo.GetActiveByAccountNumber(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Jane Doe", u.FullName)
	assert.Equal(t, "hash", u.HashedPassword)
	assert.True(t, u.Active)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*account_number = \$1 AND active = \$2`).
		WillReturnRows(sqlmock.NewRows(userColumns))
	_, err = repo.GetActiveByAccountNumber(context.Background(), "9999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Exists(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[userrepo.Repository](uow)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE username = \$1`).
		WithArgs("jane_doe").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	ok, err := repo.ExistsByUsername(context.Background(), "jane_doe")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id_number = \$1`).
		WithArgs("9001015009087").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	ok, err = repo.ExistsByIDNumber(context.Background(), "9001015009087")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE account_number = \$1`).
		WithArgs("1234567890").
		WillReturnError(errors.New("db down"))
	_, err = repo.ExistsByAccountNumber(context.Background(), "1234567890")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetActive(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[userrepo.Repository](uow)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET .*"active"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.SetActive(context.Background(), "1234567890", false))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	assert.ErrorIs(t, repo.SetActive(context.Background(), "0000000000", true), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepository_GetByUsername(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[staffrepo.Repository](uow)
	require.NoError(t, err)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "staff" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "password", "created_at"}).
			AddRow(id, "reviewer", "Ada Reviewer", "hash", time.Now()))

	s, err := repo.GetByUsername(context.Background(), "reviewer")
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "hash", s.HashedPassword)

	mock.ExpectQuery(`SELECT \* FROM "staff" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

var transactionColumns = []string{
	"id", "sender_id", "receiver_id", "sender_account_number", "receiver_account_number",
	"amount", "currency", "target_currency", "conversion_rate", "converted_amount",
	"swift_code", "payment_method", "status", "created_at", "updated_at",
}

func TestTransactionRepository_Create(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[transactionrepo.Repository](uow)
	require.NoError(t, err)

	create := &dto.TransactionCreate{
		ID:                    uuid.New(),
		SenderID:              uuid.New(),
		ReceiverID:            uuid.New(),
		SenderAccountNumber:   "1111222233",
		ReceiverAccountNumber: "4444555566",
		Amount:                decimal.RequireFromString("150.25"),
		Currency:              "USD",
		SwiftCode:             "ABCDZAJ0",
		PaymentMethod:         "bank_transfer",
		Status:                "pending",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.Create(context.Background(), create))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByStatus(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[transactionrepo.Repository](uow)
	require.NoError(t, err)

	older := time.Now().Add(-time.Hour).UTC()
	newer := time.Now().UTC()
	rows := sqlmock.NewRows(transactionColumns).
		AddRow(uuid.New(), uuid.New(), uuid.New(), "1111222233", "4444555566",
			"10.00", "USD", "", nil, nil, "ABCDZAJ0", "paypal", "pending", older, older).
		AddRow(uuid.New(), uuid.New(), uuid.New(), "1111222233", "4444555566",
			"20.00", "EUR", "GBP", "0.85", "17.00", "ABCDZAJ0", "credit_card", "pending", newer, newer)
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE status = \$1 ORDER BY created_at ASC`).
		WithArgs("pending").
		WillReturnRows(rows)

	txs, err := repo.ListByStatus(context.Background(), "pending")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.True(t, txs[0].CreatedAt.Before(txs[1].CreatedAt))
	assert.False(t, txs[0].ConversionRate.Valid)
	assert.True(t, txs[1].ConvertedAmount.Valid)
	assert.Equal(t, "17", txs[1].ConvertedAmount.Decimal.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByUserJoinsParties(t *testing.T) {
	uow, mock := newMockUoW(t)
	mock.MatchExpectationsInOrder(false)
	repo, err := repository.Get[transactionrepo.Repository](uow)
	require.NoError(t, err)

	senderID, receiverID := uuid.New(), uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE .*sender_id = \$1 OR receiver_id = \$2`).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(uuid.New(), senderID, receiverID, "1111222233", "4444555566",
				"10.00", "USD", "", nil, nil, "ABCDZAJ0", "paypal", "pending", now, now))
	partyRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "account_number", "full_name"}).
			AddRow(senderID, "1111222233", "Sam Sender").
			AddRow(receiverID, "4444555566", "Rita Receiver")
	}
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE`).WillReturnRows(partyRows())
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE`).WillReturnRows(partyRows())

	txs, err := repo.ListByUser(context.Background(), senderID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.NotNil(t, txs[0].Sender)
	require.NotNil(t, txs[0].Receiver)
	assert.Equal(t, "Sam Sender", txs[0].Sender.FullName)
	assert.Equal(t, "4444555566", txs[0].Receiver.AccountNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_TransitionStatus(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[transactionrepo.Repository](uow)
	require.NoError(t, err)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET .*WHERE .*id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	changed, err := repo.TransitionStatus(context.Background(), id, "pending", "verified")
	require.NoError(t, err)
	assert.True(t, changed)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	changed, err = repo.TransitionStatus(context.Background(), id, "pending", "verified")
	require.NoError(t, err)
	assert.False(t, changed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_GetNotFound(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[transactionrepo.Repository](uow)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(transactionColumns))
	_, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAttemptRepository(t *testing.T) {
	uow, mock := newMockUoW(t)
	repo, err := repository.Get[loginattemptrepo.Repository](uow)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "login_attempts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.Create(context.Background(), &dto.LoginAttemptCreate{
		ID:            uuid.New(),
		Username:      "jane_doe",
		AccountNumber: "1234567890",
		IPAddress:     "10.0.0.1",
		Timestamp:     time.Now().UTC(),
	}))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "login_attempts" WHERE timestamp < \$1`).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectCommit()
	n, err := repo.DeleteOlderThan(context.Background(), time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
