package mongo

import (
	"github.com/yaptide/chipstack/errors"
	"github.com/yaptide/chipstack/model"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// SimulationStore keeps simulations in the simulation collection.
type SimulationStore struct {
	db func() DB
}

// NewSimulationStore ...
func NewSimulationStore(db func() DB) *SimulationStore {
	return &SimulationStore{db: db}
}

// Insert ...
func (s *SimulationStore) Insert(sim *model.Simulation) error {
	db := s.db()
	defer db.Close()
	if err := db.Simulation().Insert(sim); err != nil {
		log.Errorf("insert %s: %s", sim.Name, err.Error())
		return errors.ErrInternalServerError
	}
	return nil
}

// Get ...
func (s *SimulationStore) Get(id bson.ObjectId) (*model.Simulation, error) {
	db := s.db()
	defer db.Close()
	sim := &model.Simulation{}
	getErr := db.Simulation().FindID(id).One(sim)
	if getErr == mgo.ErrNotFound {
		return nil, errors.ErrNotFound
	}
	if getErr != nil {
		log.Error(getErr.Error())
		return nil, errors.ErrInternalServerError
	}
	return sim, nil
}

// List ...
func (s *SimulationStore) List() ([]model.Simulation, error) {
	db := s.db()
	defer db.Close()
	list := []model.Simulation{}
	listErr := db.Simulation().Find(nil).
		Select(bson.M{"files": 0}).
		Sort("-" + CreatedKey).
		All(&list)
	if listErr != nil {
		log.Error(listErr.Error())
		return nil, errors.ErrInternalServerError
	}
	return list, nil
}

// Remove ...
func (s *SimulationStore) Remove(id bson.ObjectId) error {
	db := s.db()
	defer db.Close()
	removeErr := db.Simulation().RemoveID(id)
	if removeErr == mgo.ErrNotFound {
		return errors.ErrNotFound
	}
	if removeErr != nil {
		log.Error(removeErr.Error())
		return errors.ErrInternalServerError
	}
	return nil
}
