// Package scanner tells barcode-scanner input apart from human typing in a
// single text field.
//
// A scanner set up for a QWERTY host but plugged into an AZERTY one types its
// digits as the unshifted characters on those keys (& é " ' ( § è ! ç à). The Classifier watches
// the length of the field on every mutation and reports a completed scan when
// exactly BarcodeLength characters arrived one at a time, starting from an
// empty field, within InputDelay of the first one. The Field then rewrites the
// captured characters into digits and notifies its listeners.
//
// The package depends on the host widget only through TextModel (read and
// replace the text) and Scheduler (run work after the current change
// notification has been dispatched). Hosts report mutations by calling
// Field.Inserted, Field.Removed and Field.Changed.
package scanner
