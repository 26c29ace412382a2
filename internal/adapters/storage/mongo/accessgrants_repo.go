package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health-records-access/internal/domain/accessgrants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type grantDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PatientWallet  string             `bson:"patientWallet"`
	ProviderWallet string             `bson:"providerWallet"`
	GrantAccess    string             `bson:"grantAccess"`
	Accepted       string             `bson:"accepted"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (d grantDocument) toDomain() (accessgrants.AccessGrant, error) {
	grantAccess, err := accessgrants.ParseAnswer(d.GrantAccess)
	if err != nil {
		return accessgrants.AccessGrant{}, fmt.Errorf("doc %s: grantAccess: %w", d.ID.Hex(), err)
	}
	accepted, err := accessgrants.ParseAnswer(d.Accepted)
	if err != nil {
		return accessgrants.AccessGrant{}, fmt.Errorf("doc %s: accepted: %w", d.ID.Hex(), err)
	}
	return accessgrants.AccessGrant{
		ID:             d.ID.Hex(),
		PatientWallet:  d.PatientWallet,
		ProviderWallet: d.ProviderWallet,
		GrantAccess:    grantAccess,
		Accepted:       accepted,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}, nil
}

type AccessGrantsRepo struct {
	coll *driver.Collection
	now  func() time.Time
}

var _ accessgrants.Repository = (*AccessGrantsRepo)(nil)

func NewAccessGrantsRepo(coll *driver.Collection) *AccessGrantsRepo {
	return &AccessGrantsRepo{coll: coll, now: time.Now}
}

// EnsureIndexes crea el índice único de la tripleta y los de listado.
func (r *AccessGrantsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []driver.IndexModel{
		{
			Keys: bson.D{
				{Key: "patientWallet", Value: 1},
				{Key: "providerWallet", Value: 1},
				{Key: "grantAccess", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("grant_triple_uq"),
		},
		{Keys: bson.D{{Key: "patientWallet", Value: 1}}},
		{Keys: bson.D{{Key: "providerWallet", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (r *AccessGrantsRepo) FindExact(ctx context.Context, patientWallet, providerWallet string, grantAccess accessgrants.Answer) (accessgrants.AccessGrant, bool, error) {
	filter := bson.D{
		{Key: "patientWallet", Value: patientWallet},
		{Key: "providerWallet", Value: providerWallet},
		{Key: "grantAccess", Value: grantAccess.String()},
	}
	return r.findOne(r.coll.FindOne(ctx, filter))
}

func (r *AccessGrantsRepo) Insert(ctx context.Context, g accessgrants.AccessGrant) (accessgrants.AccessGrant, error) {
	// bson guarda milisegundos; truncamos para que lo devuelto coincida con lo leído después.
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := grantDocument{
		ID:             primitive.NewObjectID(),
		PatientWallet:  g.PatientWallet,
		ProviderWallet: g.ProviderWallet,
		GrantAccess:    g.GrantAccess.String(),
		Accepted:       g.Accepted.String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if driver.IsDuplicateKeyError(err) {
			return accessgrants.AccessGrant{}, accessgrants.ErrConflict
		}
		return accessgrants.AccessGrant{}, err
	}
	return doc.toDomain()
}

func (r *AccessGrantsRepo) GetByID(ctx context.Context, id string) (accessgrants.AccessGrant, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return accessgrants.AccessGrant{}, false, nil
	}
	return r.findOne(r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func (r *AccessGrantsRepo) FindByPatient(ctx context.Context, patientWallet string) ([]accessgrants.AccessGrant, error) {
	return r.list(ctx, bson.D{{Key: "patientWallet", Value: patientWallet}})
}

func (r *AccessGrantsRepo) FindByProvider(ctx context.Context, providerWallet string) ([]accessgrants.AccessGrant, error) {
	return r.list(ctx, bson.D{{Key: "providerWallet", Value: providerWallet}})
}

func (r *AccessGrantsRepo) UpdateAccepted(ctx context.Context, id string) (accessgrants.AccessGrant, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return accessgrants.AccessGrant{}, false, nil
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "accepted", Value: accessgrants.Yes.String()},
		{Key: "updatedAt", Value: r.now().UTC().Truncate(time.Millisecond)},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	return r.findOne(r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts))
}

func (r *AccessGrantsRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// El ObjectID crece con el tiempo de inserción, así que ordenar por _id da orden de alta.
func (r *AccessGrantsRepo) list(ctx context.Context, filter bson.D) ([]accessgrants.AccessGrant, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []grantDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]accessgrants.AccessGrant, 0, len(docs))
	for _, d := range docs {
		g, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *AccessGrantsRepo) findOne(res *driver.SingleResult) (accessgrants.AccessGrant, bool, error) {
	var doc grantDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return accessgrants.AccessGrant{}, false, nil
		}
		return accessgrants.AccessGrant{}, false, err
	}
	g, err := doc.toDomain()
	if err != nil {
		return accessgrants.AccessGrant{}, false, err
	}
	return g, true, nil
}
