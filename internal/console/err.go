package console

import (
	"errors"

	"github.com/ezrec/regdev/translate"
)

var f = translate.From

var (
	ErrArgument = errors.New(f("invalid argument"))
)

// ErrCommand is an unknown console command.
type ErrCommand string

func (err ErrCommand) Error() string {
	return f("unknown command '%v', try 'help'", string(err))
}
