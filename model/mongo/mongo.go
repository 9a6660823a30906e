// Package mongo stores exported simulations in MongoDB.
package mongo

import (
	"github.com/yaptide/chipstack/config"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

var log = config.NamedLogger("db")

const (
	simulationCollection = "simulation"
)

// PrimaryKey ...
const PrimaryKey = "_id"

// NameKey indexes simulations by name.
const NameKey = "name"

// CreatedKey ...
const CreatedKey = "created"

// DB Database.
type DB struct {
	session    *mgo.Session
	Simulation func() Collection
}

// Close ...
func (db DB) Close() {
	db.session.Close()
}

// Collection is the subset of mgo collection used by stores.
type Collection interface {
	Find(query bson.M) *mgo.Query
	FindID(id bson.ObjectId) *mgo.Query
	Insert(docs ...interface{}) error
	RemoveID(id bson.ObjectId) error
}

// SetupDB connects to dbURL and returns a function opening sessions.
func SetupDB(dbURL string) (func() DB, error) {
	log.Info("Connecting to db ...")
	session, sessionErr := mgo.Dial(dbURL)
	if sessionErr != nil {
		log.Infof("Connection error: %s", sessionErr.Error())
		return nil, sessionErr
	}
	log.Info("Connected")
	return fromSession(session)
}

// fromSession ensures indices and returns a function cloning session.
func fromSession(session *mgo.Session) (func() DB, error) {
	log.Info("Ensure indices")
	ensureErr := ensureDBIndices(session.DB(""))
	if ensureErr != nil {
		log.Infof("Ensure indices  error: %s", ensureErr.Error())
		return nil, ensureErr
	}
	session.SetSafe(&mgo.Safe{})
	log.Info("Ensure success")

	return func() DB {
		sessionClone := session.Clone()
		db := sessionClone.DB("")
		return DB{
			session: sessionClone,
			Simulation: func() Collection {
				return collection{
					collection: db.C(simulationCollection),
				}
			},
		}
	}, nil
}

func ensureDBIndices(db *mgo.Database) error {
	ensureErrs := []error{
		db.C(simulationCollection).EnsureIndex(mgo.Index{
			Key: []string{NameKey},
		}),
		db.C(simulationCollection).EnsureIndex(mgo.Index{
			Key: []string{"-" + CreatedKey},
		}),
	}
	for _, err := range ensureErrs {
		if err != nil {
			return err
		}
	}
	return nil
}
