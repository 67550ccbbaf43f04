package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greeting = "Hello, World!"

// texts returns one value of every kind with the same content.
func texts() map[string]Text {
	grown := NewBuffer(64)
	grown.AppendString(greeting)
	return map[string]Text{
		"buffer exact":  BufferFrom(greeting),
		"buffer slack":  grown,
		"literal view":  Literal(greeting),
		"dynamic view":  Borrow(strings.Clone(greeting)),
		"frozen":        Freeze(greeting),
		"cow borrowed":  NewCow(Literal(greeting)),
		"cow owned":     ownedCow(greeting),
		"empty buffer":  NewBuffer(0),
		"empty literal": Literal(""),
	}
}

func ownedCow(s string) *Cow {
	c := NewCow(Literal(s))
	c.ToMut()
	return c
}

// TestCapture_Invariants tests Len <= Cap and Cap == Len for slack-free kinds.
func TestCapture_Invariants(t *testing.T) {
	for name, txt := range texts() {
		t.Run(name, func(t *testing.T) {
			s := Capture(txt)

			assert.LessOrEqual(t, s.Len, s.Cap)
			assert.GreaterOrEqual(t, s.Wasted(), 0)
			assert.Equal(t, txt.Len(), s.Len)
			assert.NotZero(t, s.Container)

			switch s.Kind {
			case BorrowedView, OwnedImmutable:
				assert.Equal(t, s.Len, s.Cap)
			case CopyOnWrite:
				if s.Branch == BranchBorrowed {
					assert.Equal(t, s.Len, s.Cap)
				}
			}

			if s.Cap == 0 {
				assert.True(t, s.Data.IsZero(), "no storage, no address")
			}
		})
	}
}

// TestCapture_Idempotent tests that capturing twice yields the same layout.
func TestCapture_Idempotent(t *testing.T) {
	for name, txt := range texts() {
		t.Run(name, func(t *testing.T) {
			first := Capture(txt)
			second := Capture(txt)
			assert.Equal(t, first, second)
		})
	}
}

// TestCapture_ZeroAllocations tests that capture is a pure read.
func TestCapture_ZeroAllocations(t *testing.T) {
	for name, txt := range texts() {
		t.Run(name, func(t *testing.T) {
			allocs := testing.AllocsPerRun(100, func() {
				_ = Capture(txt)
			})
			assert.Zero(t, allocs)
		})
	}
}

func TestCapture_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		text   Text
		kind   Kind
		branch Branch
		heap   bool
	}{
		{"buffer", BufferFrom("x"), OwnedGrowable, BranchNone, true},
		{"literal", Literal("x"), BorrowedView, BranchNone, false},
		{"borrowed", Borrow(strings.Repeat("x", 3)), BorrowedView, BranchNone, true},
		{"frozen", Freeze("x"), OwnedImmutable, BranchNone, true},
		{"cow over literal", NewCow(Literal("x")), CopyOnWrite, BranchBorrowed, false},
		{"cow owned", ownedCow("x"), CopyOnWrite, BranchOwned, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Capture(tt.text)
			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.branch, s.Branch)
			assert.Equal(t, tt.heap, s.Heap)
		})
	}
}

// TestCapture_ViewPointsAtReferencedBytes tests that a view reports the
// address of the bytes it references, including sub-slices.
func TestCapture_ViewPointsAtReferencedBytes(t *testing.T) {
	b := BufferFrom(greeting)
	v := b.View()
	sub := v.Slice(7, 12)

	sb, sv, ss := Capture(b), Capture(v), Capture(sub)

	assert.Equal(t, sb.Data, sv.Data)
	assert.Equal(t, sb.Data+7, ss.Data)
	assert.Equal(t, "World", sub.String())
}

// TestCapture_CowDoesNotForceCopy tests that reading a Cow keeps it borrowed.
func TestCapture_CowDoesNotForceCopy(t *testing.T) {
	lit := Literal(greeting)
	c := NewCow(lit)

	for range 3 {
		s := Capture(c)
		require.Equal(t, BranchBorrowed, s.Branch)
		require.Equal(t, Capture(lit).Data, s.Data)
		_ = c.String()
		_ = c.Len()
	}
	assert.False(t, c.Owned())
}

// TestCow_ToMutCopiesOnce tests the single copy-and-switch transition.
func TestCow_ToMutCopiesOnce(t *testing.T) {
	lit := Literal(greeting)
	c := NewCow(lit)
	borrowed := Capture(c)

	first := c.ToMut()
	owned := Capture(c)
	assert.Equal(t, BranchOwned, owned.Branch)
	assert.NotEqual(t, borrowed.Data, owned.Data)
	assert.Equal(t, borrowed.Container, owned.Container)

	second := c.ToMut()
	assert.Same(t, first, second)
	assert.Equal(t, owned, Capture(c))
	assert.Equal(t, greeting, lit.String(), "source is untouched")
}

// TestCow_ToMutEmpty tests that an empty borrowed Cow still switches to
// storage of its own.
func TestCow_ToMutEmpty(t *testing.T) {
	c := NewCow(Literal(""))
	borrowed := Capture(c)
	require.True(t, borrowed.Data.IsZero())

	b := c.ToMut()
	owned := Capture(c)
	assert.Equal(t, BranchOwned, owned.Branch)
	assert.False(t, owned.Data.IsZero())
	assert.NotEqual(t, borrowed.Data, owned.Data)
	assert.Equal(t, 0, owned.Len)
	assert.Equal(t, minGrowCap, owned.Cap)
	assert.Equal(t, 0, b.Growths())
}

func TestFingerprint(t *testing.T) {
	// Reference values for 64-bit FNV-1a.
	assert.Equal(t, uint64(0xcbf29ce484222325), fingerprint(""))
	assert.Equal(t, uint64(0xaf63dc4c8601ec8c), fingerprint("a"))
	assert.Equal(t, uint64(0x85944171f73967e8), fingerprint("foobar"))

	assert.Equal(t, fingerprint("foobar"), fingerprintBytes([]byte("foobar")))
}

func TestAddr_String(t *testing.T) {
	assert.Equal(t, "0x0000000000001234", Addr(0x1234).String())
	assert.True(t, Addr(0).IsZero())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "OwnedGrowable", OwnedGrowable.String())
	assert.Equal(t, "CopyOnWrite", CopyOnWrite.String())
	assert.Equal(t, "Unknown", Kind(0).String())
	assert.Equal(t, "Owned", BranchOwned.String())
}

func TestCow_Growths(t *testing.T) {
	c := NewCow(Literal("abc"))
	assert.Zero(t, c.Growths())

	c.ToMut().AppendString("d")
	assert.Equal(t, 1, c.Growths())
}
