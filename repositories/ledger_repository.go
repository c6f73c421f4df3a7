package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentora/rentora_backend/models"
)

// LedgerStore is the persistence surface the commission ledger service works
// against. Lookups return (nil, nil) when no matching document exists.
type LedgerStore interface {
	PaymentByID(ctx context.Context, id primitive.ObjectID) (*models.PaymentRecord, error)
	// SavePaymentLinks refreshes the cached ledger ids on the payment record.
	SavePaymentLinks(ctx context.Context, paymentID, commissionID, payoutID primitive.ObjectID) error

	CommissionByID(ctx context.Context, id primitive.ObjectID) (*models.CommissionRecord, error)
	CommissionByPaymentID(ctx context.Context, paymentID primitive.ObjectID) (*models.CommissionRecord, error)
	// CreateCommissionIfAbsent inserts the record unless one already exists for
	// the same payment; it returns the stored record and whether an insert
	// happened. This is the guard against concurrent first creation.
	CreateCommissionIfAbsent(ctx context.Context, rec *models.CommissionRecord) (*models.CommissionRecord, bool, error)
	ReplaceCommission(ctx context.Context, rec *models.CommissionRecord) error

	PayoutByID(ctx context.Context, id primitive.ObjectID) (*models.LandlordPayment, error)
	PayoutByCommissionID(ctx context.Context, commissionID primitive.ObjectID) (*models.LandlordPayment, error)
	CreatePayoutIfAbsent(ctx context.Context, payout *models.LandlordPayment) (*models.LandlordPayment, bool, error)
	ReplacePayout(ctx context.Context, payout *models.LandlordPayment) error
}

// MongoLedgerStore is the MongoDB-backed LedgerStore. The unique indexes on
// commission_records.paymentRecordId and landlord_payments.commissionRecordId
// (created in config.ConnectDB) make the if-absent creates race-safe.
type MongoLedgerStore struct {
	payments    *mongo.Collection
	commissions *mongo.Collection
	payouts     *mongo.Collection
}

func NewMongoLedgerStore(db *mongo.Database) *MongoLedgerStore {
	return &MongoLedgerStore{
		payments:    db.Collection("payment_records"),
		commissions: db.Collection("commission_records"),
		payouts:     db.Collection("landlord_payments"),
	}
}

func (s *MongoLedgerStore) PaymentByID(ctx context.Context, id primitive.ObjectID) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := s.payments.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *MongoLedgerStore) SavePaymentLinks(ctx context.Context, paymentID, commissionID, payoutID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"commissionRecordId": commissionID,
			"landlordPaymentId":  payoutID,
			"updatedAt":          time.Now(),
		},
	}
	_, err := s.payments.UpdateOne(ctx, bson.M{"_id": paymentID}, update)
	return err
}

func (s *MongoLedgerStore) CommissionByID(ctx context.Context, id primitive.ObjectID) (*models.CommissionRecord, error) {
	return s.findCommission(ctx, bson.M{"_id": id})
}

func (s *MongoLedgerStore) CommissionByPaymentID(ctx context.Context, paymentID primitive.ObjectID) (*models.CommissionRecord, error) {
	return s.findCommission(ctx, bson.M{"paymentRecordId": paymentID})
}

func (s *MongoLedgerStore) findCommission(ctx context.Context, filter bson.M) (*models.CommissionRecord, error) {
	var rec models.CommissionRecord
	err := s.commissions.FindOne(ctx, filter).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MongoLedgerStore) CreateCommissionIfAbsent(ctx context.Context, rec *models.CommissionRecord) (*models.CommissionRecord, bool, error) {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	filter := bson.M{"paymentRecordId": rec.PaymentRecordID}
	update := bson.M{"$setOnInsert": rec}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.CommissionRecord
	err := s.commissions.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if err != nil {
		return nil, false, err
	}
	return &stored, stored.ID == rec.ID, nil
}

func (s *MongoLedgerStore) ReplaceCommission(ctx context.Context, rec *models.CommissionRecord) error {
	rec.UpdatedAt = time.Now()
	_, err := s.commissions.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	return err
}

func (s *MongoLedgerStore) PayoutByID(ctx context.Context, id primitive.ObjectID) (*models.LandlordPayment, error) {
	return s.findPayout(ctx, bson.M{"_id": id})
}

func (s *MongoLedgerStore) PayoutByCommissionID(ctx context.Context, commissionID primitive.ObjectID) (*models.LandlordPayment, error) {
	return s.findPayout(ctx, bson.M{"commissionRecordId": commissionID})
}

func (s *MongoLedgerStore) findPayout(ctx context.Context, filter bson.M) (*models.LandlordPayment, error) {
	var payout models.LandlordPayment
	err := s.payouts.FindOne(ctx, filter).Decode(&payout)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (s *MongoLedgerStore) CreatePayoutIfAbsent(ctx context.Context, payout *models.LandlordPayment) (*models.LandlordPayment, bool, error) {
	if payout.ID.IsZero() {
		payout.ID = primitive.NewObjectID()
	}
	filter := bson.M{"commissionRecordId": payout.CommissionRecordID}
	update := bson.M{"$setOnInsert": payout}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.LandlordPayment
	err := s.payouts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if err != nil {
		return nil, false, err
	}
	return &stored, stored.ID == payout.ID, nil
}

func (s *MongoLedgerStore) ReplacePayout(ctx context.Context, payout *models.LandlordPayment) error {
	payout.UpdatedAt = time.Now()
	_, err := s.payouts.ReplaceOne(ctx, bson.M{"_id": payout.ID}, payout)
	return err
}
