package pagedb

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	assertion "github.com/stretchr/testify/assert"
)

func TestOpenWriteThenRead(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	db, err := Open(f, Write, nil, nil)
	assert.NoError(err)
	assert.Equal(0, db.ClassCount())
	assert.NoError(db.Close())

	reopened, err := Open(f, Read, nil, nil)
	assert.NoError(err)
	assert.Equal(0, reopened.ClassCount())
}

func TestOpenDefaultFallsBackToWriteOnEmptyFile(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	db, err := Open(f, Default, nil, nil)
	assert.NoError(err)
	assert.Equal(0, db.ClassCount())
}

func TestOpenReadFailsOnEmptyFile(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	_, err := Open(f, Read, nil, nil)
	assert.Error(err)
}

func TestOpenRejectsWriteWithReadOnlyOption(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	_, err := Open(f, Write, &Options{ReadOnly: true}, nil)
	assert.Error(err)
}

// S4 — add a class and list it through both Cache and File modes.
func TestAddClassAndListIt(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	db, err := Open(f, Write, nil, nil)
	assert.NoError(err)

	person := &fakeClass{canonical: "_struct@person_<_string@name__string@surname__int@age__bool@male_>"}
	assert.NoError(db.AddClass(person))
	assert.Equal(1, db.ClassCount())

	cacheLines, err := db.PrintAllClasses(PrintCache)
	assert.NoError(err)
	fileLines, err := db.PrintAllClasses(PrintFile)
	assert.NoError(err)
	assert.Equal(cacheLines, fileLines)
	assert.Len(cacheLines, 1)
	assert.True(strings.HasSuffix(cacheLines[0], person.CanonicalString()))
}

// S5 — duplicate canonical strings are rejected.
func TestAddClassRejectsDuplicate(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	db, err := Open(f, Write, nil, nil)
	assert.NoError(err)

	c := &fakeClass{canonical: "_int@age_"}
	assert.NoError(db.AddClass(c))

	err = db.AddClass(&fakeClass{canonical: "_int@age_"})
	assert.Error(err)
	assert.True(errors.Is(err, ErrRuntime))
	assert.Equal(1, db.ClassCount())
}

// S6 — an oversized descriptor is rejected and the class-list count does
// not change.
func TestAddClassRejectsOversized(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	db, err := Open(f, Write, nil, nil)
	assert.NoError(err)

	huge := &fakeClass{canonical: strings.Repeat("_int@a_", PageSize)}
	err = db.AddClass(huge)
	assert.Error(err)
	assert.True(errors.Is(err, ErrNotImplemented))
	assert.Equal(0, db.ClassCount())

	countBefore := db.classList
	empty, listErr := countBefore.IsEmpty()
	assert.NoError(listErr)
	assert.True(empty)
}

func TestFreePageRejectsDoubleFree(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	db, err := Open(f, Write, nil, nil)
	assert.NoError(err)

	idx, err := db.allocatePage()
	assert.NoError(err)
	assert.NoError(db.FreePage(idx))

	// idx is now on the free-list, typed Free; the allocator's next fresh allocation
	// won't reuse it without going through the free-list, so re-freeing
	// the same index directly must be rejected as a double free.
	err = db.FreePage(idx)
	assert.Error(err)
}

func TestAllocatePagePrefersFreeListOverExtend(t *testing.T) {
	assert := assertion.New(t)
	f, cleanup := tempFile(t)
	defer cleanup()

	db, err := Open(f, Write, nil, nil)
	assert.NoError(err)

	a, err := db.allocatePage()
	assert.NoError(err)
	assert.NoError(db.FreePage(a))

	before := db.alloc.PagesCount()
	reused, err := db.allocatePage()
	assert.NoError(err)
	assert.Equal(a, reused)
	assert.Equal(before, db.alloc.PagesCount())
}
