package worker

// Command identifies a request sent to the worker to control the machine.
type Command uint8

const (
	// CommandRunFrame runs one video frame into the request's buffers.
	CommandRunFrame Command = iota
	// CommandKeyDown presses keys on a keyboard half-row.
	CommandKeyDown
	// CommandKeyUp releases keys on a keyboard half-row.
	CommandKeyUp
	// CommandSetMachineType switches the machine model.
	CommandSetMachineType
	// CommandReset resets the core.
	CommandReset
	// CommandLoadMemoryPage copies raw bytes into a machine memory page.
	CommandLoadMemoryPage
	// CommandLoadSnapshot applies a snapshot to machine state.
	CommandLoadSnapshot
	// CommandAttachTAP attaches a .TAP container as the tape source.
	CommandAttachTAP
	// CommandAttachTZX attaches a .TZX container as the tape source.
	CommandAttachTZX
	// CommandAttachDisk copies a disk image into the disk buffer.
	CommandAttachDisk

	// CommandReady is never sent as a request; it is the command of the
	// single readiness notification the worker emits before accepting
	// anything.
	CommandReady Command = 0xFF
)

func (c Command) String() string {
	switch c {
	case CommandRunFrame:
		return "RunFrame"
	case CommandKeyDown:
		return "KeyDown"
	case CommandKeyUp:
		return "KeyUp"
	case CommandSetMachineType:
		return "SetMachineType"
	case CommandReset:
		return "Reset"
	case CommandLoadMemoryPage:
		return "LoadMemoryPage"
	case CommandLoadSnapshot:
		return "LoadSnapshot"
	case CommandAttachTAP:
		return "AttachTAP"
	case CommandAttachTZX:
		return "AttachTZX"
	case CommandAttachDisk:
		return "AttachDisk"
	case CommandReady:
		return "Ready"
	default:
		return "Unknown"
	}
}
