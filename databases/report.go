package databases

// go generate: mockery --name ReportDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayseal/supportapp-api/models"
)

const reportName = "reports"

// ReportDatabase contains the methods to use with the report database
type ReportDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Report, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error)
	InsertOne(ctx context.Context, report models.Report) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	Watch(ctx context.Context, pipeline interface{}, opts ...*options.ChangeStreamOptions) (StreamHelper, error)
}

type reportDatabase struct {
	db DatabaseHelper
}

// NewReportDatabase initializes a new instance of report database with the provided db connection
func NewReportDatabase(db DatabaseHelper) ReportDatabase {
	return &reportDatabase{
		db: db,
	}
}

func (c *reportDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Report, error) {
	report := &models.Report{}
	err := c.db.Collection(reportName).FindOne(ctx, filter).Decode(&report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (c *reportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error) {
	cursor, err := c.db.Collection(reportName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var reports []models.Report
	if err := cursor.Decode(&reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *reportDatabase) InsertOne(ctx context.Context, report models.Report) (InsertOneResultHelper, error) {
	return c.db.Collection(reportName).InsertOne(ctx, report)
}

func (c *reportDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(reportName).UpdateOne(ctx, filter, update, opts...)
}

func (c *reportDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(reportName).CountDocuments(ctx, filter, opts...)
}

func (c *reportDatabase) Watch(ctx context.Context, pipeline interface{}, opts ...*options.ChangeStreamOptions) (StreamHelper, error) {
	return c.db.Collection(reportName).Watch(ctx, pipeline, opts...)
}
