package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gotours/config"
	"gotours/database"
	"gotours/models"
	"gotours/utils"
)

type TourHandler struct {
	db      *database.DB
	cfg     *config.Config
	tours   *Factory[models.Tour]
	s3      *s3.Client
	presign *s3.PresignClient
}

func NewTourHandler(db *database.DB, cfg *config.Config) (*TourHandler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)

	factory := NewFactory[models.Tour](db.Tours())
	factory.Populate = &Populate{
		From:         database.ColReviews,
		LocalField:   "_id",
		ForeignField: "tour",
		As:           "reviews",
	}
	factory.BeforeCreate = func(c *gin.Context, tour *models.Tour) error {
		tour.CreatedAt = time.Now()
		tour.RatingsAverage = models.DefaultRatingsAverage
		tour.RatingsQuantity = models.DefaultRatingsQuantity
		return nil
	}

	return &TourHandler{
		db:      db,
		cfg:     cfg,
		tours:   factory,
		s3:      client,
		presign: s3.NewPresignClient(client),
	}, nil
}

func (h *TourHandler) GetAllTours(c *gin.Context) error { return h.tours.GetAll(c) }
func (h *TourHandler) GetTour(c *gin.Context) error     { return h.tours.GetOne(c) }
func (h *TourHandler) CreateTour(c *gin.Context) error  { return h.tours.CreateOne(c) }
func (h *TourHandler) UpdateTour(c *gin.Context) error  { return h.tours.UpdateOne(c) }
func (h *TourHandler) DeleteTour(c *gin.Context) error  { return h.tours.DeleteOne(c) }

// UploadCover stores the posted cover image in S3 and records its key on
// the tour.
func (h *TourHandler) UploadCover(c *gin.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.NewAppError("no image file provided", http.StatusBadRequest)
	}
	content, err := file.Open()
	if err != nil {
		return err
	}
	defer content.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	s3Key := fmt.Sprintf("tours/%s/%s", id.Hex(), file.Filename)
	_, err = h.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(h.cfg.BucketName),
		Key:    aws.String(s3Key),
		Body:   content,
	})
	if err != nil {
		return fmt.Errorf("upload cover image: %w", err)
	}

	res, err := h.db.Tours().UpdateByID(ctx, id, bson.M{"$set": bson.M{"imageCover": s3Key}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.NewAppError("no document found with that id", http.StatusNotFound)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"imageCover": s3Key},
	})
	return nil
}

// GetCoverURL answers a short-lived pre-signed URL for the tour's cover
// image.
func (h *TourHandler) GetCoverURL(c *gin.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var tour models.Tour
	if err := h.db.Tours().FindOne(ctx, bson.M{"_id": id}).Decode(&tour); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewAppError("no document found with that id", http.StatusNotFound)
		}
		return err
	}
	if tour.ImageCover == "" {
		return utils.NewAppError("this tour has no cover image", http.StatusNotFound)
	}

	req, err := h.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(h.cfg.BucketName),
		Key:    aws.String(tour.ImageCover),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 10 * time.Minute
	})
	if err != nil {
		return fmt.Errorf("presign cover image: %w", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"url": req.URL},
	})
	return nil
}
