package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessTraceProgress(t *testing.T) {
	trace := []Operation{
		{Kind: RequestRead, Sector: 100},
		{Kind: RequestWrite, Sector: 200},
	}
	p := NewProcess(1, trace)
	require.Equal(t, StateReady, p.State)
	require.Equal(t, 2, p.TraceLen())

	op, ok := p.PeekOp()
	require.True(t, ok)
	require.Equal(t, trace[0], op)

	// Peek does not consume
	op, _ = p.PeekOp()
	require.Equal(t, trace[0], op)

	p.Advance()
	op, ok = p.PeekOp()
	require.True(t, ok)
	require.Equal(t, trace[1], op)
	require.False(t, p.Finished())

	p.Advance()
	require.True(t, p.Finished())
	_, ok = p.PeekOp()
	require.False(t, ok)
	require.Equal(t, 2, p.Completed())
}

func TestProcessQuantumAccounting(t *testing.T) {
	p := NewProcess(1, nil)
	p.QuantumRemaining = 20.0
	p.ChargeCPU(7.0)
	p.ChargeCPU(0.15)
	require.InDelta(t, 12.85, p.QuantumRemaining, 1e-9)

	// The quantum may go negative; expiry is checked at operation boundaries
	p.ChargeCPU(15.0)
	require.Negative(t, p.QuantumRemaining)
}

func TestProcessTraceIsCopied(t *testing.T) {
	trace := []Operation{{Kind: RequestRead, Sector: 100}}
	p := NewProcess(1, trace)

	trace[0].Sector = 999
	op, _ := p.PeekOp()
	require.Equal(t, 100, op.Sector)
}
