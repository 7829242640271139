package main
import (
	"os"
	"fmt"
	"flag"
	"errors"

	"steglsb/util"
	"steglsb/config"
	"steglsb/stegano/img"
)

// flags shared by all the image commands; zero values mean "take from config".
type commonFlags struct {
	configFile	string
	mode		uint
	alpha		bool
	raw		bool
}

func newFlagSet( name string, cf *commonFlags ) *flag.FlagSet {
	fs := flag.NewFlagSet( name, flag.ContinueOnError )
	fs.StringVar( &cf.configFile, "c", ConfigFilename, "configuration file" )
	fs.UintVar( &cf.mode, "mode", 0, "low bits per channel, 1 or 2" )
	fs.BoolVar( &cf.alpha, "alpha", false, "use alpha channel for data" )
	fs.BoolVar( &cf.raw, "raw", false, "don't prepend the payload with its length" )
	return fs
}

/*
 * loadConfig reads the configuration file. The default file may be absent,
 * then defaults are used. Flags given explicitly override the file.
 */
func loadConfig( fs *flag.FlagSet, cf *commonFlags ) (*config.FullConfig, error) {
	conf, err := config.LoadConfig( cf.configFile )
	if errors.Is( err, os.ErrNotExist ) && cf.configFile == ConfigFilename {
		conf, err = config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	fs.Visit( func( f *flag.Flag ) {
		switch f.Name {
		case "mode":
			conf.StegConfig.LSBMode = uint8( cf.mode )
		case "alpha":
			conf.StegConfig.UseAlpha = cf.alpha
		case "raw":
			conf.StegConfig.Framed = !cf.raw
		}
	})
	if cf.mode > 255 {
		conf.StegConfig.LSBMode = 0
	}
	if err := conf.StegConfig.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func Hide( args []string ) error {
	var cf commonFlags
	var input, output, payloadFile, message string
	fs := newFlagSet( "hide", &cf )
	fs.StringVar( &input, "i", "", "decoy image (PNG or BMP)" )
	fs.StringVar( &output, "o", "", "output image" )
	fs.StringVar( &payloadFile, "f", "", "file to hide" )
	fs.StringVar( &message, "m", "", "text message to hide" )
	if err := fs.Parse( args ); err != nil {
		return err
	}
	if input == "" || output == "" {
		return errors.New("both -i and -o are required")
	}

	conf, err := loadConfig( fs, &cf )
	if err != nil {
		return err
	}
	logger := util.NewLogger( &conf.Logger )

	data, err := util.ReadPayload( payloadFile, message )
	if err != nil {
		return err
	}
	decoy, err := os.ReadFile( input )
	if err != nil {
		return err
	}

	opts := conf.StegConfig.Options()
	if !opts.Framed {
		logger.LogWarning( fmt.Sprintf("No length header, reveal with -raw -n %d", len(data)) )
	}
	result, err := img.Hide( decoy, data, opts )
	if err != nil {
		logger.LogError( err )
		return err
	}
	if err = os.WriteFile( output, result, 0660 ); err != nil {
		return err
	}
	logger.LogSuccess( fmt.Sprintf("Hidden %d bytes in %s (%s)", len(data), output, img.Format( result )) )
	return nil
}

func Reveal( args []string ) error {
	var cf commonFlags
	var input, output string
	var length int
	fs := newFlagSet( "reveal", &cf )
	fs.StringVar( &input, "i", "", "image with hidden data" )
	fs.StringVar( &output, "o", "", "output file, stdout if not set" )
	fs.IntVar( &length, "n", 0, "payload length in bytes, required with -raw" )
	if err := fs.Parse( args ); err != nil {
		return err
	}
	if input == "" {
		return errors.New("-i is required")
	}

	conf, err := loadConfig( fs, &cf )
	if err != nil {
		return err
	}
	logger := util.NewLogger( &conf.Logger )

	opts := conf.StegConfig.Options()
	opts.Length = length
	if !opts.Framed && length <= 0 {
		return errors.New("-n is required without a length header")
	}

	decoy, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	data, err := img.Reveal( decoy, opts )
	if err != nil {
		logger.LogError( err )
		return err
	}
	if output != "" {
		logger.LogSuccess( fmt.Sprintf("Revealed %d bytes into %s", len(data), output) )
	}
	return util.WriteOutput( output, data )
}

func ShowCapacity( args []string ) error {
	var cf commonFlags
	var input string
	fs := newFlagSet( "capacity", &cf )
	fs.StringVar( &input, "i", "", "image to check" )
	if err := fs.Parse( args ); err != nil {
		return err
	}
	if input == "" {
		return errors.New("-i is required")
	}
	conf, err := loadConfig( fs, &cf )
	if err != nil {
		return err
	}

	decoy, err := os.ReadFile( input )
	if err != nil {
		return err
	}
	n, err := img.Capacity( decoy, conf.StegConfig.Options() )
	if err != nil {
		return err
	}
	fmt.Printf("%d\n", n)
	return nil
}

func GenConfig( args []string ) error {
	fs := flag.NewFlagSet( "genconfig", flag.ContinueOnError )
	filename := fs.String( "c", ConfigFilename, "where to write configuration" )
	if err := fs.Parse( args ); err != nil {
		return err
	}
	if _, err := os.Stat( *filename ); err == nil {
		return fmt.Errorf("%s already exists", *filename)
	}
	return config.SaveConfig( *filename, config.DefaultConfig() )
}
