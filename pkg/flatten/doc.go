// Package flatten converts nested records to ordered dot-path maps and back.
package flatten
