// Package dao is the data access object over the users collection.
package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	gcrypto "github.com/Laisky/go-utils/v6/crypto"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/model"
	"github.com/aahabhisheksingh/studyhub-api/library/db/mongo"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

const usersColName = "users"

var Instance *Users

// Users dao type
type Users struct {
	logger glog.Logger
	db     mongo.DB
}

func Initialize(ctx context.Context) {
	model.Initialize(ctx)

	Instance = New(log.Logger.Named("user_dao"), model.AccountsDB)
	if err := Instance.setupCols(ctx); err != nil {
		log.Logger.Panic("setup users collection", zap.Error(err))
	}
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Users {
	return &Users{
		logger: logger,
		db:     db,
	}
}

// GetUsersCol get users collection
func (d *Users) GetUsersCol() *mongoLib.Collection {
	return d.db.GetCol(usersColName)
}

func (d *Users) setupCols(ctx context.Context) error {
	if _, err := d.GetUsersCol().Indexes().CreateOne(ctx, mongoLib.IndexModel{
		Keys: bson.M{
			"account": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return errors.Wrap(err, "create index for account")
	}

	return nil
}

// GetUserByAccount returns nil without error when the account is unknown.
func (d *Users) GetUserByAccount(ctx context.Context, account string) (*model.User, error) {
	u := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "account", Value: account}}).
		Decode(u); err != nil {
		if mongo.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "find user %q", account)
	}

	return u, nil
}

// GetUserByGoogleID returns nil without error when no account carries
// the given Google subject id.
func (d *Users) GetUserByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	u := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "google_id", Value: googleID}}).
		Decode(u); err != nil {
		if mongo.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "find user by google id")
	}

	return u, nil
}

// ValidateLogin validate user login
func (d *Users) ValidateLogin(ctx context.Context, account, rawPassword string) (u *model.User, err error) {
	d.logger.Debug("ValidateLogin", zap.String("account", account))
	u, err = d.GetUserByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}

	if err = gcrypto.VerifyHashedPassword([]byte(rawPassword), u.Password); err != nil {
		d.logger.Debug("password mismatch", zap.String("account", account))
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}

	return u, nil
}

// InsertUser inserts the user, mapping the unique-index violation on
// account to ErrAccountExists.
func (d *Users) InsertUser(ctx context.Context, u *model.User) error {
	if _, err := d.GetUsersCol().InsertOne(ctx, u); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.WithStack(model.ErrAccountExists)
		}

		return errors.Wrapf(err, "insert user %q", u.Account)
	}

	d.logger.Info("insert new user", zap.String("account", u.Account))
	return nil
}

// UpdateUser saves the full user document by id.
func (d *Users) UpdateUser(ctx context.Context, u *model.User) error {
	if _, err := d.GetUsersCol().
		UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": u}); err != nil {
		return errors.Wrapf(err, "update user %q", u.Account)
	}

	return nil
}
