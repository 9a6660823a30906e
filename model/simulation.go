// Package model contains stored documents of chipstack.
package model

import (
	"sort"
	"time"

	"github.com/yaptide/chipstack/pkg/stack/job"
	"gopkg.in/mgo.v2/bson"
)

// File of an exported simulation. Kept as a list because file names
// contain dots, which are not allowed in mongo keys.
type File struct {
	Name    string `json:"name" bson:"name"`
	Content string `json:"content" bson:"content"`
}

// Simulation is a stored build output.
type Simulation struct {
	ID         bson.ObjectId `json:"id" bson:"_id"`
	Name       string        `json:"name" bson:"name"`
	Files      []File        `json:"files,omitempty" bson:"files,omitempty"`
	LayerNames []string      `json:"layerNames" bson:"layerNames"`
	Created    time.Time     `json:"created" bson:"created"`
}

// InitialSimulation converts output of a build into a new document.
func InitialSimulation(out job.Output) *Simulation {
	files := make([]File, 0, len(out.Files))
	for _, name := range out.FileNames() {
		files = append(files, File{Name: name, Content: out.Files[name]})
	}
	return &Simulation{
		ID:         bson.NewObjectId(),
		Name:       out.Name,
		Files:      files,
		LayerNames: out.LayerNames,
		Created:    time.Now().UTC(),
	}
}

// Summary returns copy without file content.
func (s Simulation) Summary() Simulation {
	s.Files = nil
	return s
}

// SimulationStore keeps build outputs.
type SimulationStore interface {
	Insert(s *Simulation) error
	Get(id bson.ObjectId) (*Simulation, error)
	// List returns summaries, newest first.
	List() ([]Simulation, error)
	Remove(id bson.ObjectId) error
}

func sortNewestFirst(list []Simulation) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Created.After(list[j].Created)
	})
}
