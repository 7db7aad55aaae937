package cmd

import (
	"fmt"
	"os"

	"gobd2/internal/cmd/root"
	"gobd2/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gobd2",
	Short: "Talk to a vehicle through an ELM327 OBD-II interpreter",
	Run:   root.Run,
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().Bool("mock", false, "Use mock OBD provider")
	rootCmd.PersistentFlags().String("port", defaultPort(), "Serial device of the ELM327 interpreter")
	rootCmd.PersistentFlags().Int("baud", 38400, "Baud rate for serial connection")
	rootCmd.PersistentFlags().Bool("headers", false, "Keep ECU headers in interpreter responses")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("mock", rootCmd.PersistentFlags().Lookup("mock"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("baud", rootCmd.PersistentFlags().Lookup("baud"))
	viper.BindPFlag("headers", rootCmd.PersistentFlags().Lookup("headers"))

	// Set default values
	viper.SetDefault("debug", false)
	viper.SetDefault("mock", false)
	viper.SetDefault("baud", 38400)
	viper.SetDefault("headers", false)
}

func initLogger() {
	log.InitLogger(viper.GetBool("debug"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
