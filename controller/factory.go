package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gotours/utils"
)

var validate = validator.New()

const queryTimeout = 10 * time.Second

// Populate describes a related-document expansion applied on single-item
// reads: a $lookup joining From on LocalField = ForeignField, decoded
// into the As field of the model.
type Populate struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
}

// Factory produces the standard CRUD handlers for one entity type. It
// holds no per-request state, so a single instance per entity is built at
// startup and shared. Persistence and validation are delegated to the
// driver and the validator; the optional hooks let an entity bolt on its
// own orchestration (reviews use AfterWrite to recompute tour ratings).
type Factory[T any] struct {
	Col        *mongo.Collection
	BaseFilter bson.M

	// ParentParam/ParentField support the nested-resource convention:
	// when the route carries the parent id param, listings filter by it.
	ParentParam string
	ParentField string

	Populate *Populate

	BeforeCreate func(c *gin.Context, doc *T) error
	// BeforeUpdate runs after the body has been merged onto the stored
	// document and before validation; stored holds the pre-merge state.
	BeforeUpdate func(c *gin.Context, stored, merged *T) error
	AfterWrite   func(ctx context.Context, doc *T) error
}

func NewFactory[T any](col *mongo.Collection) *Factory[T] {
	return &Factory[T]{Col: col}
}

// CreateOne inserts the request body and answers 201 with the stored
// document.
func (f *Factory[T]) CreateOne(c *gin.Context) error {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	if f.BeforeCreate != nil {
		if err := f.BeforeCreate(c, &doc); err != nil {
			return err
		}
	}
	if err := validate.Struct(&doc); err != nil {
		return utils.NewAppError(err.Error(), http.StatusBadRequest)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	res, err := f.Col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewAppError("duplicate field value, please use another value", http.StatusBadRequest)
		}
		return err
	}

	// read the document back so the response carries the generated id
	var created T
	if err := f.Col.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return err
	}

	if f.AfterWrite != nil {
		if err := f.AfterWrite(ctx, &created); err != nil {
			return err
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"data": created},
	})
	return nil
}

// GetAll lists documents, optionally scoped to a parent resource, with
// the full filter/sort/field/pagination pipeline applied.
func (f *Factory[T]) GetAll(c *gin.Context) error {
	filter, opts := utils.NewAPIFeatures(c.Request.URL.Query()).
		Filter().
		Sort().
		LimitFields().
		Paginate().
		Query()

	for k, v := range f.BaseFilter {
		filter[k] = v
	}
	if f.ParentParam != "" {
		if raw := c.Param(f.ParentParam); raw != "" {
			parentID, err := bson.ObjectIDFromHex(raw)
			if err != nil {
				return utils.NewAppError("invalid id", http.StatusBadRequest)
			}
			filter[f.ParentField] = parentID
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	cursor, err := f.Col.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return err
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(docs),
		"data":    gin.H{"data": docs},
	})
	return nil
}

// GetOne fetches by id, expanding related documents when a Populate spec
// is configured.
func (f *Factory[T]) GetOne(c *gin.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	filter := bson.M{"_id": id}
	for k, v := range f.BaseFilter {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var doc T
	if f.Populate != nil {
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: filter}},
			bson.D{{Key: "$lookup", Value: bson.M{
				"from":         f.Populate.From,
				"localField":   f.Populate.LocalField,
				"foreignField": f.Populate.ForeignField,
				"as":           f.Populate.As,
			}}},
		}
		cursor, err := f.Col.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		var docs []T
		if err := cursor.All(ctx, &docs); err != nil {
			return err
		}
		if len(docs) == 0 {
			return utils.NewAppError("no document found with that id", http.StatusNotFound)
		}
		doc = docs[0]
	} else {
		if err := f.Col.FindOne(ctx, filter).Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return utils.NewAppError("no document found with that id", http.StatusNotFound)
			}
			return err
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"data": doc},
	})
	return nil
}

// UpdateOne merges the request body onto the stored document, validates
// the result and writes it back, answering with the post-update document.
func (f *Factory[T]) UpdateOne(c *gin.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	filter := bson.M{"_id": id}
	for k, v := range f.BaseFilter {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var doc T
	if err := f.Col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewAppError("no document found with that id", http.StatusNotFound)
		}
		return err
	}

	stored := doc

	// JSON merge: only the fields present in the body change
	if err := c.ShouldBindJSON(&doc); err != nil {
		return utils.NewAppError("invalid request body", http.StatusBadRequest)
	}
	if f.BeforeUpdate != nil {
		if err := f.BeforeUpdate(c, &stored, &doc); err != nil {
			return err
		}
	}
	if err := validate.Struct(&doc); err != nil {
		return utils.NewAppError(err.Error(), http.StatusBadRequest)
	}

	if _, err := f.Col.ReplaceOne(ctx, bson.M{"_id": id}, doc); err != nil {
		return err
	}

	if f.AfterWrite != nil {
		if err := f.AfterWrite(ctx, &doc); err != nil {
			return err
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"data": doc},
	})
	return nil
}

// DeleteOne removes by id and answers 204 with no body.
func (f *Factory[T]) DeleteOne(c *gin.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	filter := bson.M{"_id": id}
	for k, v := range f.BaseFilter {
		filter[k] = v
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var doc T
	if err := f.Col.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewAppError("no document found with that id", http.StatusNotFound)
		}
		return err
	}

	if f.AfterWrite != nil {
		if err := f.AfterWrite(ctx, &doc); err != nil {
			return err
		}
	}

	c.Status(http.StatusNoContent)
	return nil
}

func objectIDParam(c *gin.Context, name string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return bson.ObjectID{}, utils.NewAppError("invalid id", http.StatusBadRequest)
	}
	return id, nil
}
