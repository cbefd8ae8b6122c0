package steps

import (
	"testing"

	"github.com/stepflow/stepflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(titles ...string) []models.Step {
	seq := make([]models.Step, 0, len(titles))
	for _, title := range titles {
		step := models.NewStep()
		step.Title = title
		seq = append(seq, step)
	}

	return seq
}

func ids(seq []models.Step) []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = s.ID
	}

	return out
}

func TestInsertAt(t *testing.T) {
	t.Parallel()

	seq := sequence("a", "b", "c")

	tests := []struct {
		name   string
		index  int
		titles []string
	}{
		{name: "at head", index: 0, titles: []string{"new", "a", "b", "c"}},
		{name: "in middle", index: 1, titles: []string{"a", "new", "b", "c"}},
		{name: "at tail", index: 3, titles: []string{"a", "b", "c", "new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			step := models.NewStep()
			step.Title = "new"

			out, err := InsertAt(seq, tt.index, step)
			require.NoError(t, err)
			require.Len(t, out, 4)

			for i, title := range tt.titles {
				assert.Equal(t, title, out[i].Title)
			}
		})
	}
}

func TestInsertAt_OutOfRange(t *testing.T) {
	t.Parallel()

	seq := sequence("a", "b")

	for _, index := range []int{-1, 3, 100} {
		out, err := InsertAt(seq, index, models.NewStep())
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, seq, out)
	}
}

func TestRemoveAt_InvertsInsertAt(t *testing.T) {
	t.Parallel()

	seq := sequence("a", "b", "c")

	for index := range len(seq) + 1 {
		inserted, err := InsertAt(seq, index, models.NewStep())
		require.NoError(t, err)

		restored, err := RemoveAt(inserted, index)
		require.NoError(t, err)
		assert.Equal(t, seq, restored, "index %d", index)
	}
}

func TestRemoveAt_OutOfRange(t *testing.T) {
	t.Parallel()

	seq := sequence("a")

	for _, index := range []int{-1, 1, 5} {
		out, err := RemoveAt(seq, index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, seq, out)
	}

	empty, err := RemoveAt(nil, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Empty(t, empty)
}

func TestDuplicateAt(t *testing.T) {
	t.Parallel()

	seq := sequence("a", "b", "c")
	seq[1].Description = "second step"
	seq[1].Screenshot = &models.Screenshot{URL: "https://cdn.example/b.jpg"}

	out, err := DuplicateAt(seq, 1)
	require.NoError(t, err)
	require.Len(t, out, len(seq)+1)

	// Copy sits immediately after the original and matches in every field
	// except id.
	assert.Equal(t, out[1].Title, out[2].Title)
	assert.Equal(t, out[1].Description, out[2].Description)
	assert.Equal(t, out[1].Screenshot.URL, out[2].Screenshot.URL)
	assert.NotEqual(t, out[1].ID, out[2].ID)

	// Fresh id is unique across the whole result.
	seen := make(map[string]bool)
	for _, id := range ids(out) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	// Screenshot copy is detached from the original's.
	out[2].Screenshot.URL = "changed"
	assert.Equal(t, "https://cdn.example/b.jpg", out[1].Screenshot.URL)
}

func TestDuplicateAt_OutOfRange(t *testing.T) {
	t.Parallel()

	seq := sequence("a")

	out, err := DuplicateAt(seq, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, seq, out)
}

func TestUpdateFieldAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		patch Patch
		check func(t *testing.T, step models.Step)
	}{
		{
			name:  "set title",
			patch: SetTitle{Title: "renamed"},
			check: func(t *testing.T, step models.Step) {
				t.Helper()
				assert.Equal(t, "renamed", step.Title)
			},
		},
		{
			name:  "set description",
			patch: SetDescription{Description: "details"},
			check: func(t *testing.T, step models.Step) {
				t.Helper()
				assert.Equal(t, "details", step.Description)
			},
		},
		{
			name:  "set screenshot",
			patch: SetScreenshot{URL: "https://cdn.example/shot.jpg"},
			check: func(t *testing.T, step models.Step) {
				t.Helper()
				require.NotNil(t, step.Screenshot)
				assert.Equal(t, "https://cdn.example/shot.jpg", step.Screenshot.URL)
			},
		},
		{
			name:  "clear screenshot",
			patch: ClearScreenshot{},
			check: func(t *testing.T, step models.Step) {
				t.Helper()
				assert.Nil(t, step.Screenshot)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seq := sequence("a", "b")
			seq[1].Screenshot = &models.Screenshot{URL: "https://cdn.example/old.jpg"}
			before := models.CloneSteps(seq)

			out, err := UpdateFieldAt(seq, 1, tt.patch)
			require.NoError(t, err)

			tt.check(t, out[1])

			// Id and untouched neighbors survive, input is unchanged.
			assert.Equal(t, before[1].ID, out[1].ID)
			assert.Equal(t, before[0], out[0])
			assert.Equal(t, before, seq)
		})
	}
}

func TestUpdateFieldAt_OutOfRange(t *testing.T) {
	t.Parallel()

	seq := sequence("a")

	out, err := UpdateFieldAt(seq, 2, SetTitle{Title: "x"})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, seq, out)
}

func TestMutations_PreserveUnaffectedIDs(t *testing.T) {
	t.Parallel()

	seq := sequence("a", "b", "c", "d")
	original := ids(seq)

	inserted, err := InsertAt(seq, 2, models.NewStep())
	require.NoError(t, err)
	assert.Equal(t, original[:2], ids(inserted)[:2])
	assert.Equal(t, original[2:], ids(inserted)[3:])

	removed, err := RemoveAt(seq, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{original[0], original[2], original[3]}, ids(removed))

	duplicated, err := DuplicateAt(seq, 0)
	require.NoError(t, err)
	assert.Equal(t, original[0], duplicated[0].ID)
	assert.Equal(t, original[1:], ids(duplicated)[2:])
}

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 3, Count(sequence("a", "b", "c")))
}
