package mongo

import (
	"github.com/yaptide/chipstack/errors"
	"gopkg.in/mgo.v2/bson"
)

// ConvertToObjectID parses hex id. Malformed ids are reported as not found.
func ConvertToObjectID(id string) (bson.ObjectId, error) {
	if !bson.IsObjectIdHex(id) {
		return "", errors.ErrNotFound
	}
	return bson.ObjectIdHex(id), nil
}
