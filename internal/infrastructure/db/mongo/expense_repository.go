package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expenser/expense-api/internal/core/domain"
)

const collectionExpenses = "expenses"

// ExpenseRepository implements ports.ExpenseRepository using MongoDB.
type ExpenseRepository struct {
	col *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{col: db.Collection(collectionExpenses)}
}

type mongoExpense struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Amount    float64            `bson:"amount"`
	Currency  string             `bson:"currency"`
	Category  string             `bson:"category"`
	Date      time.Time          `bson:"date"`
	Note      string             `bson:"note,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (me *mongoExpense) toDomain() *domain.Expense {
	return &domain.Expense{
		ID:        me.ID.Hex(),
		Amount:    me.Amount,
		Currency:  domain.Currency(me.Currency),
		Category:  domain.Category(me.Category),
		Date:      me.Date.UTC(),
		Note:      me.Note,
		UserID:    me.User.Hex(),
		CreatedAt: me.CreatedAt.UTC(),
		UpdatedAt: me.UpdatedAt.UTC(),
	}
}

// Create inserts a new expense document.
func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	owner, ok := objectID(e.UserID)
	if !ok {
		return nil, fmt.Errorf("insert expense: invalid owner id %q", e.UserID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoExpense{
		ID:        primitive.NewObjectID(),
		Amount:    e.Amount,
		Currency:  string(e.Currency),
		Category:  string(e.Category),
		Date:      e.Date.UTC(),
		Note:      e.Note,
		User:      owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return doc.toDomain(), nil
}

// FindOne retrieves an expense by id, scoped to its owner.
func (r *ExpenseRepository) FindOne(ctx context.Context, ownerID, id string) (*domain.Expense, error) {
	filter, ok := scopedFilter(ownerID, id)
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoExpense
	if err := r.col.FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return me.toDomain(), nil
}

// Find returns the expenses matching f, newest first.
func (r *ExpenseRepository) Find(ctx context.Context, f domain.ExpenseFilter) ([]*domain.Expense, error) {
	query, ok := toBSON(f)
	if !ok {
		return []*domain.Expense{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoExpense
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	out := make([]*domain.Expense, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update applies a partial update to an owned expense and returns the result.
func (r *ExpenseRepository) Update(ctx context.Context, ownerID, id string, p domain.ExpensePatch) (*domain.Expense, error) {
	filter, ok := scopedFilter(ownerID, id)
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoExpense
	err := r.col.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": patchToBSON(p, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return me.toDomain(), nil
}

// Delete removes an owned expense.
func (r *ExpenseRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, ok := scopedFilter(ownerID, id)
	if !ok {
		return domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// EnsureIndexes creates the index backing owner-scoped, date-sorted listings.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}

func scopedFilter(ownerID, id string) (bson.M, bool) {
	oid, ok := objectID(id)
	if !ok {
		return nil, false
	}
	owner, ok := objectID(ownerID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": oid, "user": owner}, true
}

// toBSON translates a filter into a Mongo query. ok is false when the owner
// id cannot match any document.
func toBSON(f domain.ExpenseFilter) (bson.M, bool) {
	owner, ok := objectID(f.OwnerID)
	if !ok {
		return nil, false
	}
	q := bson.M{"user": owner}

	if f.From != nil || f.To != nil {
		date := bson.M{}
		if f.From != nil {
			date["$gte"] = f.From.UTC()
		}
		if f.To != nil {
			date["$lte"] = f.To.UTC()
		}
		q["date"] = date
	}
	if f.Category != "" {
		q["category"] = string(f.Category)
	}
	if f.Currency != "" {
		q["currency"] = string(f.Currency)
	}
	if f.MinAmount != nil || f.MaxAmount != nil {
		amount := bson.M{}
		if f.MinAmount != nil {
			amount["$gte"] = *f.MinAmount
		}
		if f.MaxAmount != nil {
			amount["$lte"] = *f.MaxAmount
		}
		q["amount"] = amount
	}
	return q, true
}

func patchToBSON(p domain.ExpensePatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Amount != nil {
		set["amount"] = *p.Amount
	}
	if p.Currency != nil {
		set["currency"] = string(*p.Currency)
	}
	if p.Category != nil {
		set["category"] = string(*p.Category)
	}
	if p.Note != nil {
		set["note"] = *p.Note
	}
	if p.Date != nil {
		set["date"] = p.Date.UTC()
	}
	return set
}
