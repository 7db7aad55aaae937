package root

import (
	"errors"
	"fmt"

	"gobd2/internal/obd"
	"gobd2/internal/obd/elm"
	"gobd2/internal/obd/mock"
	"gobd2/internal/obd/serial"
	"gobd2/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func Run(cmd *cobra.Command, args []string) {
	var provider obd.Provider
	if viper.GetBool("mock") {
		provider = mock.New()
	} else {
		dialer := serial.Dialer{
			Port: viper.GetString("port"),
			Baud: viper.GetInt("baud"),
		}
		cfg := elm.Config{
			Headers: viper.GetBool("headers"),
			Logger:  log.L(),
		}

		device, err := obd.New(dialer, cfg)
		if err != nil {
			log.Fatal("failed to initialize OBD device", zap.Error(err))
		}
		provider = device
	}
	defer provider.Close()

	printSummary(provider)
}

func printSummary(provider obd.Provider) {
	if vin, err := provider.GetVIN(); err != nil {
		log.Error("failed to get VIN", zap.Error(err))
	} else {
		fmt.Printf("VIN:              %s\n", vin)
	}

	if rpm, err := provider.GetRPM(); err != nil {
		log.Error("failed to get RPM", zap.Error(err))
	} else {
		fmt.Printf("Engine RPM:       %.0f rpm\n", rpm)
	}

	if temp, err := provider.GetCoolantTemp(); err != nil {
		log.Error("failed to get coolant temperature", zap.Error(err))
	} else {
		fmt.Printf("Coolant temp:     %.0f C\n", temp)
	}

	if speed, err := provider.GetSpeed(); err != nil {
		log.Error("failed to get speed", zap.Error(err))
	} else {
		fmt.Printf("Vehicle speed:    %d km/h\n", speed)
	}

	codes, err := provider.GetDTCs()
	if err != nil && !errors.Is(err, obd.ErrNoData) {
		log.Error("failed to get error codes", zap.Error(err))
		return
	}

	fmt.Println("Current DTC Error Codes:")
	if len(codes) == 0 {
		fmt.Println("No error codes.")
		return
	}
	for _, code := range codes {
		fmt.Printf("- %s: %s\n", code.Code, code.Description)
	}
}
