package pagedb_test

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"

	"pagedb"
	"pagedb/codec"
	"pagedb/storage"
	"pagedb/typesystem"
)

func TestCompactClassRoundTripsThroughCodec(t *testing.T) {
	assert := assertion.New(t)
	path := t.TempDir() + "/test.pagedb"

	f, err := storage.Open(path, 0644)
	assert.NoError(err)
	defer f.Close()

	db, err := pagedb.Open(f, pagedb.Write, nil, nil)
	assert.NoError(err)

	age, err := typesystem.NewInt("age")
	assert.NoError(err)
	assert.NoError(db.AddClass(age))

	assert.NoError(db.CompactClass(age.CanonicalString(), codec.SnappyCodec))
	assert.NoError(db.CompactClass(age.CanonicalString(), codec.LZ4Codec))

	lines, err := db.PrintAllClasses(pagedb.PrintFile)
	assert.NoError(err)
	assert.Len(lines, 1)
}

func TestCompactClassRejectsUnknownCanonical(t *testing.T) {
	assert := assertion.New(t)
	path := t.TempDir() + "/test.pagedb"

	f, err := storage.Open(path, 0644)
	assert.NoError(err)
	defer f.Close()

	db, err := pagedb.Open(f, pagedb.Write, nil, nil)
	assert.NoError(err)

	err = db.CompactClass("_int@nonexistent_", codec.SnappyCodec)
	assert.Error(err)
}

// End-to-end: Database driven entirely through the storage and typesystem
// collaborators, exercising the full Open/AddClass/PrintAllClasses path the
// way a real caller would assemble them.
func TestDatabaseEndToEndWithRealCollaborators(t *testing.T) {
	assert := assertion.New(t)
	path := t.TempDir() + "/test.pagedb"

	f, err := storage.Open(path, 0644)
	assert.NoError(err)
	defer f.Close()

	db, err := pagedb.Open(f, pagedb.Write, nil, nil)
	assert.NoError(err)

	name, err := typesystem.NewString("name")
	assert.NoError(err)
	surname, err := typesystem.NewString("surname")
	assert.NoError(err)
	age, err := typesystem.NewInt("age")
	assert.NoError(err)
	male, err := typesystem.NewBool("male")
	assert.NoError(err)
	person, err := typesystem.NewStruct("person", name, surname, age, male)
	assert.NoError(err)

	assert.NoError(db.AddClass(person))
	assert.NoError(db.Close())

	reopened, err := pagedb.Open(f, pagedb.Read, nil, nil)
	assert.NoError(err)
	assert.Equal(1, reopened.ClassCount())

	lines, err := reopened.PrintAllClasses(pagedb.PrintFile)
	assert.NoError(err)
	assert.Len(lines, 1)
	assert.Contains(lines[0], person.CanonicalString())
}
