package dataset

import (
	"math"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// DatePattern matches the two accepted date spellings, yyyy-mm-dd and yyyy-mm.
const DatePattern = `^[0-9]{4}-[0-9]{2}(-[0-9]{2})?$`

var (
	recordSchemaOnce sync.Once
	recordSchema     *openapi3.Schema
)

// RecordSchema returns the schema every record must satisfy once aliases have
// been folded. Unknown extra fields are allowed.
func RecordSchema() *openapi3.Schema {
	recordSchemaOnce.Do(func() {
		recordSchema = openapi3.NewObjectSchema().
			WithProperty(FieldBranch, openapi3.NewStringSchema().WithMinLength(1)).
			WithProperty(FieldPEP, openapi3.NewIntegerSchema().WithMin(1).WithMax(math.MaxInt32)).
			WithProperty(FieldStatus, openapi3.NewStringSchema().WithMinLength(1)).
			WithProperty(FieldFirstRelease, openapi3.NewStringSchema().WithPattern(DatePattern)).
			WithProperty(FieldEndOfLife, openapi3.NewStringSchema().WithPattern(DatePattern)).
			WithProperty(FieldReleaseManager, openapi3.NewStringSchema().WithMinLength(1)).
			WithRequired([]string{
				FieldBranch,
				FieldPEP,
				FieldStatus,
				FieldFirstRelease,
				FieldEndOfLife,
				FieldReleaseManager,
			})
	})
	return recordSchema
}
