package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

const roomsCollection = "rooms"

// RoomRepository stores rooms. Member and join-request mutations are single
// atomic document updates ($addToSet/$pull), so concurrent approve/leave
// calls on the same room cannot silently lose writes.
type RoomRepository struct {
	coll *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{coll: db.Collection(roomsCollection)}
}

type roomDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description,omitempty"`
	Tags         []string           `bson:"tags,omitempty"`
	IsPrivate    bool               `bson:"is_private"`
	CreatedBy    string             `bson:"created_by"`
	Members      []string           `bson:"members"`
	JoinRequests []string           `bson:"join_requests"`
	Theme        string             `bson:"theme"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := roomDoc{
		Name:         room.Name,
		Description:  room.Description,
		Tags:         room.Tags,
		IsPrivate:    room.IsPrivate,
		CreatedBy:    room.CreatedBy,
		Members:      room.Members,
		JoinRequests: []string{},
		Theme:        string(room.Theme),
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}

	created := *room
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roomDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return fromRoomDoc(doc), nil
}

func (r *RoomRepository) ListVisible(ctx context.Context, userID string) ([]domain.Room, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"is_private": false},
		bson.M{"members": userID},
	}}
	return r.list(ctx, filter)
}

func (r *RoomRepository) ListByMember(ctx context.Context, userID string) ([]domain.Room, error) {
	return r.list(ctx, bson.M{"members": userID})
}

// Search is a case-insensitive substring match over name, description and
// tags. The query is quoted so user input cannot inject regex syntax.
func (r *RoomRepository) Search(ctx context.Context, query string) ([]domain.Room, error) {
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": rx},
		bson.M{"description": rx},
		bson.M{"tags": rx},
	}}
	return r.list(ctx, filter)
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// AddJoinRequest uses $addToSet, so re-requesting leaves exactly one entry.
func (r *RoomRepository) AddJoinRequest(ctx context.Context, roomID, userID string) error {
	return r.updateByID(ctx, roomID, bson.M{"$addToSet": bson.M{"join_requests": userID}})
}

// ApproveJoinRequest matches the pending request in the filter and moves the
// user into members in one update, so the two lists cannot diverge mid-way.
func (r *RoomRepository) ApproveJoinRequest(ctx context.Context, roomID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		return domain.ErrRoomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "join_requests": userID}
	update := bson.M{
		"$addToSet": bson.M{"members": userID},
		"$pull":     bson.M{"join_requests": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("approve join request: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotRequested
	}
	return nil
}

func (r *RoomRepository) AddMember(ctx context.Context, roomID, userID string) error {
	return r.updateByID(ctx, roomID, bson.M{"$addToSet": bson.M{"members": userID}})
}

func (r *RoomRepository) RemoveMember(ctx context.Context, roomID, userID string) error {
	return r.updateByID(ctx, roomID, bson.M{"$pull": bson.M{"members": userID}})
}

func (r *RoomRepository) Rename(ctx context.Context, roomID, name string) error {
	return r.updateByID(ctx, roomID, bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}})
}

func (r *RoomRepository) SetTheme(ctx context.Context, roomID string, theme domain.RoomTheme) error {
	return r.updateByID(ctx, roomID, bson.M{"$set": bson.M{"theme": string(theme), "updated_at": time.Now().UTC()}})
}

// EnsureIndexes creates the membership and privacy indexes used by listing.
func (r *RoomRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "members", Value: 1}}},
		{Keys: bson.D{{Key: "is_private", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *RoomRepository) updateByID(ctx context.Context, roomID string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(roomID)
	if err != nil {
		return domain.ErrRoomNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) list(ctx context.Context, filter bson.M) ([]domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer cur.Close(ctx)

	var rooms []domain.Room
	for cur.Next(ctx) {
		var doc roomDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, *fromRoomDoc(doc))
	}
	return rooms, cur.Err()
}

func fromRoomDoc(doc roomDoc) *domain.Room {
	return &domain.Room{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Description:  doc.Description,
		Tags:         doc.Tags,
		IsPrivate:    doc.IsPrivate,
		CreatedBy:    doc.CreatedBy,
		Members:      doc.Members,
		JoinRequests: doc.JoinRequests,
		Theme:        domain.RoomTheme(doc.Theme),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
