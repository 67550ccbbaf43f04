package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/strlab/internal/layout"
)

func growableSnap(container, data layout.Addr, n, c int, fp uint64) layout.Snapshot {
	return layout.Snapshot{
		Kind:        layout.OwnedGrowable,
		Container:   container,
		Data:        data,
		Len:         n,
		Cap:         c,
		Heap:        true,
		Fingerprint: fp,
	}
}

func cowSnap(branch layout.Branch, data layout.Addr, n, c int, fp uint64) layout.Snapshot {
	return layout.Snapshot{
		Kind:        layout.CopyOnWrite,
		Branch:      branch,
		Container:   0xc0,
		Data:        data,
		Len:         n,
		Cap:         c,
		Heap:        branch == layout.BranchOwned,
		Fingerprint: fp,
	}
}

// TestClassify_Rules tests every rule with synthetic snapshots.
func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name   string
		before layout.Snapshot
		after  layout.Snapshot
		want   Class
		rule   Rule
	}{
		{
			name:   "unchanged",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x10, 0x100, 5, 8, 1),
			want:   Unchanged,
			rule:   RuleUnchanged,
		},
		{
			name:   "content rewritten in place",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x10, 0x100, 5, 8, 2),
			want:   MutatedInPlace,
			rule:   RuleInPlace,
		},
		{
			name:   "append within capacity",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x10, 0x100, 8, 8, 2),
			want:   MutatedInPlace,
			rule:   RuleInPlace,
		},
		{
			name:   "capacity extended in place but sufficed",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x10, 0x100, 6, 16, 2),
			want:   MutatedInPlace,
			rule:   RuleInPlace,
		},
		{
			name:   "doubling reallocation",
			before: growableSnap(0x10, 0x100, 5, 5, 1),
			after:  growableSnap(0x10, 0x200, 11, 11, 2),
			want:   ReallocatedInPlace,
			rule:   RuleRealloc,
		},
		{
			name:   "first allocation of empty buffer",
			before: growableSnap(0x10, 0, 0, 0, 1),
			after:  growableSnap(0x10, 0x200, 1, 8, 2),
			want:   ReallocatedInPlace,
			rule:   RuleRealloc,
		},
		{
			name:   "clone",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x20, 0x200, 5, 5, 1),
			want:   Cloned,
			rule:   RuleClone,
		},
		{
			name:   "clone with different content of equal length",
			before: growableSnap(0x10, 0x100, 5, 5, 1),
			after:  growableSnap(0x20, 0x200, 5, 5, 9),
			want:   Cloned,
			rule:   RuleClone,
		},
		{
			name:   "move",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x20, 0x100, 5, 8, 1),
			want:   Moved,
			rule:   RuleMove,
		},
		{
			name:   "cow read stays borrowed",
			before: cowSnap(layout.BranchBorrowed, 0x100, 5, 5, 1),
			after:  cowSnap(layout.BranchBorrowed, 0x100, 5, 5, 1),
			want:   DeferredCopyAvoided,
			rule:   RuleDeferredCopy,
		},
		{
			name:   "cow first write copies",
			before: cowSnap(layout.BranchBorrowed, 0x100, 5, 5, 1),
			after:  cowSnap(layout.BranchOwned, 0x200, 16, 16, 2),
			want:   DeferredCopyTriggered,
			rule:   RuleDeferredCopy,
		},
		{
			name:   "cow owned write in place",
			before: cowSnap(layout.BranchOwned, 0x200, 5, 5, 1),
			after:  cowSnap(layout.BranchOwned, 0x200, 5, 5, 2),
			want:   MutatedInPlace,
			rule:   RuleInPlace,
		},
		{
			name:   "cow owned idle",
			before: cowSnap(layout.BranchOwned, 0x200, 5, 5, 1),
			after:  cowSnap(layout.BranchOwned, 0x200, 5, 5, 1),
			want:   Unchanged,
			rule:   RuleUnchanged,
		},
		{
			name:   "cow owned growth",
			before: cowSnap(layout.BranchOwned, 0x200, 5, 5, 1),
			after:  cowSnap(layout.BranchOwned, 0x300, 12, 12, 2),
			want:   ReallocatedInPlace,
			rule:   RuleRealloc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.before, tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Class)
			assert.Equal(t, tt.rule, got.Rule)
			assert.NotEmpty(t, got.Trail)
			assert.Equal(t, tt.before.Wasted(), got.WastedBefore)
			assert.Equal(t, tt.after.Wasted(), got.WastedAfter)
		})
	}
}

// TestClassify_Violations tests that uncovered pairs are reported, not guessed.
func TestClassify_Violations(t *testing.T) {
	view := func(container, data layout.Addr, n int) layout.Snapshot {
		return layout.Snapshot{Kind: layout.BorrowedView, Container: container, Data: data, Len: n, Cap: n}
	}

	tests := []struct {
		name   string
		before layout.Snapshot
		after  layout.Snapshot
		rule   Rule
	}{
		{
			name:   "capacity grew past old capacity without moving",
			before: growableSnap(0x10, 0x100, 5, 5, 1),
			after:  growableSnap(0x10, 0x100, 11, 16, 2),
			rule:   RuleInPlace,
		},
		{
			name:   "capacity shrank in place",
			before: growableSnap(0x10, 0x100, 5, 16, 1),
			after:  growableSnap(0x10, 0x100, 5, 8, 1),
			rule:   RuleInPlace,
		},
		{
			name:   "growth below doubling",
			before: growableSnap(0x10, 0x100, 5, 5, 1),
			after:  growableSnap(0x10, 0x200, 6, 6, 2),
			rule:   RuleRealloc,
		},
		{
			name:   "storage moved without growth",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x10, 0x200, 5, 8, 1),
			rule:   RuleRealloc,
		},
		{
			name:   "view storage replaced",
			before: view(0x10, 0x100, 5),
			after:  view(0x10, 0x200, 5),
			rule:   RuleRealloc,
		},
		{
			name:   "conversion between kinds",
			before: view(0x10, 0x100, 5),
			after:  growableSnap(0x20, 0x200, 5, 5, 0),
			rule:   RuleNone,
		},
		{
			name:   "new value of different length",
			before: growableSnap(0x10, 0x100, 5, 5, 1),
			after:  growableSnap(0x20, 0x200, 10, 10, 2),
			rule:   RuleNone,
		},
		{
			name:   "address collision",
			before: growableSnap(0x10, 0x100, 5, 8, 1),
			after:  growableSnap(0x20, 0x100, 5, 8, 7),
			rule:   RuleMove,
		},
		{
			name:   "cow borrowed storage swapped",
			before: cowSnap(layout.BranchBorrowed, 0x100, 5, 5, 1),
			after:  cowSnap(layout.BranchBorrowed, 0x180, 5, 5, 1),
			rule:   RuleDeferredCopy,
		},
		{
			name:   "cow owned without copy",
			before: cowSnap(layout.BranchBorrowed, 0x100, 5, 5, 1),
			after:  cowSnap(layout.BranchOwned, 0x100, 5, 5, 1),
			rule:   RuleDeferredCopy,
		},
		{
			name:   "cow reverted",
			before: cowSnap(layout.BranchOwned, 0x200, 5, 5, 1),
			after:  cowSnap(layout.BranchBorrowed, 0x100, 5, 5, 1),
			rule:   RuleDeferredCopy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.before, tt.after)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPrecondition)

			var perr *PreconditionError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.rule, perr.Rule)
			assert.Equal(t, tt.before, perr.Before)
			assert.Equal(t, tt.after, perr.After)
			assert.Contains(t, err.Error(), tt.rule.String())
		})
	}
}

// TestClassify_RealValues runs the classifier over real layout operations.
func TestClassify_RealValues(t *testing.T) {
	t.Run("clone is never moved", func(t *testing.T) {
		b := layout.BufferFrom("identical")
		before := layout.Capture(b)
		c := b.Clone()

		got, err := Classify(before, layout.Capture(c))
		require.NoError(t, err)
		assert.Equal(t, Cloned, got.Class)
	})

	t.Run("move is never cloned", func(t *testing.T) {
		b := layout.BufferFrom("transfer")
		before := layout.Capture(b)
		m := b.Move()

		got, err := Classify(before, layout.Capture(m))
		require.NoError(t, err)
		assert.Equal(t, Moved, got.Class)
	})

	t.Run("push past capacity reallocates", func(t *testing.T) {
		b := layout.NewBuffer(5)
		b.AppendString("Hello")
		before := layout.Capture(b)
		b.AppendString(" World")
		after := layout.Capture(b)

		got, err := Classify(before, after)
		require.NoError(t, err)
		assert.Equal(t, ReallocatedInPlace, got.Class)
		assert.GreaterOrEqual(t, after.Cap, 2*before.Cap)
	})

	t.Run("cow lifecycle", func(t *testing.T) {
		c := layout.NewCow(layout.Literal("borrowed text"))

		s0 := layout.Capture(c)
		_ = c.String()
		s1 := layout.Capture(c)
		got, err := Classify(s0, s1)
		require.NoError(t, err)
		assert.Equal(t, DeferredCopyAvoided, got.Class)

		c.ToMut().AppendString(" [modified]")
		s2 := layout.Capture(c)
		got, err = Classify(s1, s2)
		require.NoError(t, err)
		assert.Equal(t, DeferredCopyTriggered, got.Class)

		c.ToMut().UpperASCII()
		s3 := layout.Capture(c)
		got, err = Classify(s2, s3)
		require.NoError(t, err)
		assert.Equal(t, MutatedInPlace, got.Class)

		c.ToMut().Truncate(c.Len())
		s4 := layout.Capture(c)
		got, err = Classify(s3, s4)
		require.NoError(t, err)
		assert.Equal(t, Unchanged, got.Class)
	})
}

func TestClass_Allocates(t *testing.T) {
	allocating := map[Class]bool{
		Cloned:                true,
		ReallocatedInPlace:    true,
		DeferredCopyTriggered: true,
	}
	for _, c := range Classes() {
		assert.Equal(t, allocating[c], c.Allocates(), c.String())
	}
	assert.Equal(t, "Unknown", Class(99).String())
}

// TestPreconditionError_Error tests the diagnostic format.
func TestPreconditionError_Error(t *testing.T) {
	err := &PreconditionError{
		Rule:   RuleRealloc,
		Reason: "capacity grew 5 -> 6, below the doubling policy",
		Before: growableSnap(0x10, 0x100, 5, 5, 1),
		After:  growableSnap(0x10, 0x200, 6, 6, 2),
	}

	want := "rule 3 (reallocation): capacity grew 5 -> 6, below the doubling policy\n" +
		"  before: OwnedGrowable obj=0x0000000000000010 ptr=0x0000000000000100 len=5 cap=5\n" +
		"  after:  OwnedGrowable obj=0x0000000000000010 ptr=0x0000000000000200 len=6 cap=6"
	assert.Equal(t, want, err.Error())
	assert.True(t, errors.Is(err, ErrPrecondition))
}
