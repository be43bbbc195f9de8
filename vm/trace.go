package vm

import (
	"context"
	"log/slog"

	"github.com/mdrozdova/peregrine/isa"
)

// trace emits one structured debug-level line per executed instruction:
// tick, pc, the instruction just executed, the TOS latches, the Z flag, and
// snapshots of both stacks. Stable enough to support golden-file testing.
func (i *Instance) trace(cell isa.MemoryCell) {
	if !i.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	i.log.Debug("step",
		"tick", i.ticks,
		"pc", cell.Addr,
		"op", cell.Op.String(),
		"arg", cell.Arg,
		"data_tos_reg_1", i.dp.dataTosReg1,
		"data_tos_reg_2", i.dp.dataTosReg2,
		"address_tos_reg_1", i.dp.addressTosReg1,
		"z", i.dp.z,
		"ds", i.dp.ds,
		"as", i.dp.as,
	)
}
