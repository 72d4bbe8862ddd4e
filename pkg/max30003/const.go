package max30003

// Register addresses
const (
	NoOp      = 0x00
	Status    = 0x01
	EnInt     = 0x02
	EnInt2    = 0x03
	MngrInt   = 0x04
	MngrDyn   = 0x05
	SwRst     = 0x08
	Synch     = 0x09
	FIFORst   = 0x0A
	Info      = 0x0F
	CnfgGen   = 0x10
	CnfgCal   = 0x12
	CnfgEmux  = 0x14
	CnfgEcg   = 0x15
	CnfgRtor1 = 0x1D
	CnfgRtor2 = 0x1E
	EcgBurst  = 0x20
	EcgFIFO   = 0x21
	RtoR      = 0x25
)

// Power-up configuration values. These encode the vendor's documented
// bring-up for a 128sps, 20V/V single-lead setup and must not change:
// the front end will not produce valid samples with anything else.
const (
	cnfgGenValue  = 0x081007 // ECG channel + resistive bias enabled
	cnfgEcgValue  = 0x805000 // 128sps rate class, channel gain
	cnfgEmuxValue = 0x000000 // ECGP/ECGN connected to the input pads
)

// ETAG codes from the low bits of an ECG FIFO word.
const (
	etagValid    = 0b000
	etagFastMode = 0b001
	etagValidEOF = 0b010
	etagFastEOF  = 0b011
	etagEmpty    = 0b110
	etagOverflow = 0b111
)

// SampleRate is the output data rate configured by the power-up
// sequence, in samples per second.
const SampleRate = 128
