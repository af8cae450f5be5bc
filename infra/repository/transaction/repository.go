package transaction

import (
	"context"
	"time"

	"github.com/amirasaad/payportal/pkg/dto"
	repo "github.com/amirasaad/payportal/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed transaction repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transaction.Repository.
func (r *repository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) error {
	tx := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&tx).Error
}

// Get implements transaction.Repository.
func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.TransactionRead, error) {
	var tx Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(&tx), nil
}

// ListByStatus implements transaction.Repository.
func (r *repository) ListByStatus(
	ctx context.Context,
	status string,
) ([]*dto.TransactionRead, error) {
	var txs []Transaction
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(txs), nil
}

// ListByUser implements transaction.Repository.
func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.TransactionRead, error) {
	var txs []Transaction
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(txs), nil
}

// TransitionStatus implements transaction.Repository.
func (r *repository) TransitionStatus(
	ctx context.Context,
	id uuid.UUID,
	from, to string,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func mapCreateDTOToModel(c *dto.TransactionCreate) Transaction {
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return Transaction{
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
		CreatedAt:             created,
		UpdatedAt:             created,
	}
}

func mapModelToDTO(tx *Transaction) *dto.TransactionRead {
	read := &dto.TransactionRead{
		ID:                    tx.ID,
		SenderID:              tx.SenderID,
		ReceiverID:            tx.ReceiverID,
		SenderAccountNumber:   tx.SenderAccountNumber,
		ReceiverAccountNumber: tx.ReceiverAccountNumber,
		Amount:                tx.Amount,
		Currency:              tx.Currency,
		TargetCurrency:        tx.TargetCurrency,
		ConversionRate:        tx.ConversionRate,
		ConvertedAmount:       tx.ConvertedAmount,
		SwiftCode:             tx.SwiftCode,
		PaymentMethod:         tx.PaymentMethod,
		Status:                tx.Status,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
	if tx.Sender != nil {
		read.Sender = mapParty(tx.Sender)
	}
	if tx.Receiver != nil {
		read.Receiver = mapParty(tx.Receiver)
	}
	return read
}

func mapParty(p *Party) *dto.PartyRead {
	return &dto.PartyRead{ID: p.ID, AccountNumber: p.AccountNumber, FullName: p.FullName}
}

func mapModelsToDTOs(txs []Transaction) []*dto.TransactionRead {
	out := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		out = append(out, mapModelToDTO(&txs[i]))
	}
	return out
}

var _ repo.Repository = (*repository)(nil)
