package source

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matzehuels/heatcal/pkg/errors"
)

// Mongo reads documents of the form
//
//	{series: "runs", date: ISODate("2024-01-01"), value: 5.2}
//
// Several documents on the same day are summed.
type Mongo struct {
	name   string
	series string
	coll   *mongo.Collection
}

// NewMongo returns a dataset reading series from coll.
func NewMongo(name, series string, coll *mongo.Collection) *Mongo {
	return &Mongo{name: name, series: series, coll: coll}
}

func (m *Mongo) Name() string { return m.name }

type valueDoc struct {
	Series string    `bson:"series"`
	Date   time.Time `bson:"date"`
	Value  float64   `bson:"value"`
}

// Fetch implements Dataset.
func (m *Mongo) Fetch(ctx context.Context, year int) (Series, error) {
	cur, err := m.coll.Find(ctx, yearFilter(m.series, year))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "dataset %q: find", m.name)
	}
	var docs []valueDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "dataset %q: decode", m.name)
	}
	return fold(docs), nil
}

func yearFilter(series string, year int) bson.M {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return bson.M{
		"series": series,
		"date":   bson.M{"$gte": start, "$lt": start.AddDate(1, 0, 0)},
	}
}

func fold(docs []valueDoc) Series {
	s := make(Series, len(docs))
	for _, d := range docs {
		s.Add(d.Date, d.Value)
	}
	return s
}
