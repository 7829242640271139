package util
import (
	"os"
	"errors"
	"golang.org/x/text/unicode/norm"
)

var ErrNoPayload = errors.New("either a payload file or a message must be given")

// text typed in different terminals may come in different normal forms.
func FixUnicode( in string ) string {
	return norm.NFC.String( in )
}

// ReadPayload returns the content of filename, or message if no file given.
func ReadPayload( filename, message string ) ([]byte, error) {
	if filename != "" && message != "" {
		return nil, errors.New("payload file and message are mutually exclusive")
	}
	if filename != "" {
		return os.ReadFile( filename )
	}
	if message != "" {
		return []byte( FixUnicode( message ) ), nil
	}
	return nil, ErrNoPayload
}

// WriteOutput writes data into filename, or to stdout when it is empty.
func WriteOutput( filename string, data []byte ) error {
	if filename == "" {
		_, err := os.Stdout.Write( data )
		return err
	}
	return os.WriteFile( filename, data, 0660 )
}
