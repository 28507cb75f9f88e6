// Package circuit maps classified lines to quantum gates and lays them out as
// a circuit over a small qubit register.
package circuit

import (
	"math"

	"github.com/phobologic/qprefix/internal/model"
)

// Gate names used in circuits.
const (
	GateH       = "h"
	GateCX      = "cx"
	GateX       = "x"
	GateRZ      = "rz"
	GateID      = "id"
	GateS       = "s"
	GateT       = "t"
	GateMeasure = "measure"
	GateCZ      = "cz"
	GateSwap    = "swap"
)

// gateTable is indexed by symbol code and covers every symbol.
var gateTable = [model.SymbolCount]model.GateDescriptor{
	model.PlusOne:   {Name: GateH, Arity: 1},
	model.One:       {Name: GateCX, Arity: 2},
	model.MinusOne:  {Name: GateX, Arity: 1},
	model.PlusZero:  {Name: GateRZ, Arity: 1, Param: math.Pi / 4, Parametric: true},
	model.Zero:      {Name: GateID, Arity: 1},
	model.MinusZero: {Name: GateS, Arity: 1},
	model.PlusN:     {Name: GateMeasure, Arity: 1},
	model.N:         {Name: GateT, Arity: 1},
	model.MinusN:    {Name: GateMeasure, Arity: 1},
	model.PlusTwo:   {Name: GateCZ, Arity: 2},
	model.PlusThree: {Name: GateSwap, Arity: 2},
}

// Gate returns the gate a symbol maps to.
func Gate(s model.Symbol) model.GateDescriptor {
	return gateTable[s.Code()]
}

// Step is how a symbol moves the qubit pointer: +1 forward, -1 back, 0 stay.
func Step(s model.Symbol) int {
	switch s {
	case model.PlusOne, model.One, model.PlusZero:
		return 1
	case model.PlusTwo, model.PlusN, model.MinusZero:
		return -1
	}
	return 0
}
