package rc

import "unsafe"

// Resource must stay a single machine word so embedding it adds no padding.
const resourceSize = 8

var _ [resourceSize - int(unsafe.Sizeof(Resource{}))]byte
var _ [int(unsafe.Sizeof(Resource{})) - resourceSize]byte
