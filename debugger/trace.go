package debugger

import (
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/regdev/device"
)

// Trace logs every step and the halt to a logrus logger.
//
// Steps are logged at debug level, halts at info level.
type Trace struct {
	Log     log.FieldLogger // Logger, defaults to the standard logger.
	Program *device.Program // If set, the instruction is logged.
}

var _ device.Debugger = (*Trace)(nil)

func (tr *Trace) logger() log.FieldLogger {
	if tr.Log == nil {
		return log.StandardLogger()
	}
	return tr.Log
}

// OnStep logs the step at debug level.
func (tr *Trace) OnStep(ip uint64, pre, post []uint64) bool {
	fields := log.Fields{"ip": ip}

	if tr.Program != nil {
		ins, ok := tr.Program.At(ip)
		if ok {
			fields["instruction"] = ins.String()
		}
	}

	changes := Diff(pre, post)
	if len(changes) > 0 {
		text := make([]string, len(changes))
		for n, change := range changes {
			text[n] = change.String()
		}
		fields["changes"] = text
	}

	tr.logger().WithFields(fields).Debug("step")
	return true
}

// OnHalt logs the halt at info level.
func (tr *Trace) OnHalt(ip uint64) {
	tr.logger().WithField("ip", ip).Info("halt")
}
