// Package embedded imports every client package so that their init
// functions register them with clients.Default.
package embedded

import (
	// Read clients.
	_ "github.com/FocuswithJustin/xml2csv/internal/clients/xmlreader"

	// Write clients.
	_ "github.com/FocuswithJustin/xml2csv/internal/clients/csvwriter"
	_ "github.com/FocuswithJustin/xml2csv/internal/clients/sqlitewriter"
)
