// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a test failure and allow the test to
// continue. The Demand*() functions stop the test immediately. The Demand
// variants are useful when the values being tested are used in further tests
// and so must be correct.
//
// ExpectSuccess() and ExpectFailure() test for success and failure under
// generic conditions. It is worth describing how nil is handled because it is
// not obvious: nil is considered a success. This is because of how errors
// usually work (nil to indicate no error).
//
// The Capture type implements the io.Writer interface and can be used to
// capture output for comparison, including output written by another
// goroutine.
package test
