/*
Copyright © 2026 the lagrangian authors.
This file is part of lagrangian.

lagrangian is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

lagrangian is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with lagrangian.  If not, see <http://www.gnu.org/licenses/>.
*/

package lagrangian

import (
	"log"
	"sync/atomic"
)

var verbose int32

// SetVerbose turns on or off the package's debug trace. It is safe to call
// from any goroutine at any time, including while a MapEngine computation
// is in flight.
func SetVerbose(on bool) {
	if on {
		atomic.StoreInt32(&verbose, 1)
	} else {
		atomic.StoreInt32(&verbose, 0)
	}
}

// Verbose reports whether the debug trace is currently enabled.
func Verbose() bool {
	return atomic.LoadInt32(&verbose) != 0
}

// Debug logs a formatted message if the verbose flag is set, otherwise it is
// a no-op. Format and args follow log.Printf conventions.
func Debug(format string, args ...interface{}) {
	if Verbose() {
		log.Printf(format, args...)
	}
}
