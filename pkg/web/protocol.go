package web

// Request identifies a binary message from a client. The identifier is the
// first byte of the message; the payload layout depends on the request.
type Request = uint8

const (
	// RequestRunFrame has no payload; the hub paces frames itself, so
	// clients normally never send it.
	RequestRunFrame Request = iota
	// RequestKeyDown carries the half-row index and key mask.
	RequestKeyDown
	// RequestKeyUp carries the half-row index and key mask.
	RequestKeyUp
	// RequestSetMachineType carries the model identifier byte.
	RequestSetMachineType
	// RequestReset has no payload.
	RequestReset
	// RequestLoadMemoryPage carries the page number byte followed by the
	// page contents.
	RequestLoadMemoryPage
	// RequestLoadSnapshot carries a format byte (SnapshotSNA or
	// SnapshotZ80) followed by the container bytes.
	RequestLoadSnapshot
	// RequestAttachTAP carries .TAP container bytes.
	RequestAttachTAP
	// RequestAttachTZX carries .TZX container bytes.
	RequestAttachTZX
	// RequestAttachDisk carries disk image bytes.
	RequestAttachDisk
	// RequestSettings carries a settings byte (see Setting*) and a value.
	RequestSettings
)

// Snapshot format bytes for RequestLoadSnapshot.
const (
	SnapshotSNA uint8 = iota
	SnapshotZ80
)

// Settings bytes for RequestSettings.
const (
	SettingCompression uint8 = iota
	SettingFrameCaching
)

// Message identifies a binary message to a client, as its first byte.
type Message = uint8

const (
	// MessageReady is sent once, when the machine can accept requests.
	MessageReady Message = iota
	// MessageFrame carries a 2-byte cache slot index followed by frame
	// pixels, brotli-compressed when compression is on.
	MessageFrame
	// MessageFrameCache carries only a 2-byte cache slot index; the
	// client replays the frame it stored under that slot.
	MessageFrameCache
	// MessageInfo carries the hub settings byte (see Hub.info).
	MessageInfo
)
