/*
Copyright © 2018 the Windsaloft authors.
This file is part of Windsaloft.

Windsaloft is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Windsaloft is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Windsaloft.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command windsaloft is a command-line interface for turning gridded wind
// fields into streamlines.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/windsaloft/windsaloftutil"
)

func main() {
	if err := windsaloftutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
