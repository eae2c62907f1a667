package orderRepo

import (
	"context"
	"fmt"

	"sokoni/database/repository"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithStock inserts the order and decrements stock for every line in a
// single MongoDB transaction. The stock filter requires enough remaining
// units, so a concurrent checkout that drains the shelf first makes this one
// fail cleanly with ErrInsufficientStock and nothing persisted.
func (r *mongoOrderRepo) CreateWithStock(ctx context.Context, order models.Order) error {
	client := r.orders.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, it := range order.Items {
			filter := bson.M{
				"id":     it.ProductID,
				"active": true,
				"stock":  bson.M{"$gte": it.Quantity},
			}
			res, err := r.products.UpdateOne(sc, filter, bson.M{
				"$inc": bson.M{"stock": -it.Quantity},
			})
			if err != nil {
				return fmt.Errorf("stock reservation failed for %s: %w", it.ProductID, err)
			}
			if res.MatchedCount == 0 {
				return fmt.Errorf("product %s: %w", it.ProductID, repository.ErrInsufficientStock)
			}
		}

		if _, err := r.orders.InsertOne(sc, order); err != nil {
			return fmt.Errorf("insert order failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("checkout transaction failed: %w", err)
	}

	return nil
}
