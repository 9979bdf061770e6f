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

	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/domain"
)

const usersCollection = "users"

// UserRepository stores users with their embedded notification log and theme
// preference in a single document per user.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type notificationDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Type       string             `bson:"type"`
	Message    string             `bson:"message"`
	RoomID     string             `bson:"room_id,omitempty"`
	FromUserID string             `bson:"from_user,omitempty"`
	IsRead     bool               `bson:"is_read"`
	CreatedAt  time.Time          `bson:"created_at"`
}

type themeDoc struct {
	Background  string `bson:"background"`
	TextColor   string `bson:"text_color"`
	AccentColor string `bson:"accent_color"`
}

type userDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	FirstName        string             `bson:"first_name,omitempty"`
	LastName         string             `bson:"last_name,omitempty"`
	Email            string             `bson:"email"`
	PasswordHash     string             `bson:"password_hash"`
	DateOfBirth      time.Time          `bson:"dob,omitempty"`
	SecurityQuestion string             `bson:"security_question,omitempty"`
	Notifications    []notificationDoc  `bson:"notifications"`
	Theme            themeDoc           `bson:"theme"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromUserDoc(doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return fromUserDoc(doc), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *fromUserDoc(doc))
	}
	return users, cur.Err()
}

func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	proj := options.Find().SetProjection(bson.M{"first_name": 1, "last_name": 1, "email": 1})
	cur, err := r.coll.Find(ctx, bson.M{}, proj)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, domain.User{
			ID:        doc.ID.Hex(),
			FirstName: doc.FirstName,
			LastName:  doc.LastName,
			Email:     doc.Email,
		})
	}
	return users, cur.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password_hash": hash}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateTheme(ctx context.Context, id string, theme domain.ThemePreference) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"theme": themeDoc{
		Background:  theme.Background,
		TextColor:   theme.TextColor,
		AccentColor: theme.AccentColor,
	}}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update theme: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AppendNotification is a single $push; the subdocument id is assigned here.
func (r *UserRepository) AppendNotification(ctx context.Context, userID string, n domain.Notification) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := notificationDoc{
		ID:         primitive.NewObjectID(),
		Type:       n.Type,
		Message:    n.Message,
		RoomID:     n.RoomID,
		FromUserID: n.FromUserID,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"notifications": doc}})
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// MarkNotificationRead sets the read flag through the positional operator.
// Already-read notifications still match, so the call is idempotent.
func (r *UserRepository) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	nid, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": uid, "notifications._id": nid}
	update := bson.M{"$set": bson.M{"notifications.$.is_read": true}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toUserDoc(u *domain.User) userDoc {
	notifications := make([]notificationDoc, 0, len(u.Notifications))
	for _, n := range u.Notifications {
		id, err := primitive.ObjectIDFromHex(n.ID)
		if err != nil {
			id = primitive.NewObjectID()
		}
		notifications = append(notifications, notificationDoc{
			ID:         id,
			Type:       n.Type,
			Message:    n.Message,
			RoomID:     n.RoomID,
			FromUserID: n.FromUserID,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
		})
	}
	return userDoc{
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		DateOfBirth:      u.DateOfBirth,
		SecurityQuestion: u.SecurityQuestion,
		Notifications:    notifications,
		Theme: themeDoc{
			Background:  u.Theme.Background,
			TextColor:   u.Theme.TextColor,
			AccentColor: u.Theme.AccentColor,
		},
		CreatedAt: u.CreatedAt,
	}
}

func fromUserDoc(doc userDoc) *domain.User {
	notifications := make([]domain.Notification, 0, len(doc.Notifications))
	for _, n := range doc.Notifications {
		notifications = append(notifications, domain.Notification{
			ID:         n.ID.Hex(),
			Type:       n.Type,
			Message:    n.Message,
			RoomID:     n.RoomID,
			FromUserID: n.FromUserID,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
		})
	}
	return &domain.User{
		ID:               doc.ID.Hex(),
		FirstName:        doc.FirstName,
		LastName:         doc.LastName,
		Email:            doc.Email,
		PasswordHash:     doc.PasswordHash,
		DateOfBirth:      doc.DateOfBirth,
		SecurityQuestion: doc.SecurityQuestion,
		Notifications:    notifications,
		Theme: domain.ThemePreference{
			Background:  doc.Theme.Background,
			TextColor:   doc.Theme.TextColor,
			AccentColor: doc.Theme.AccentColor,
		},
		CreatedAt: doc.CreatedAt,
	}
}
