package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/zonekit/po2zone/pkg/po2zone"
	"github.com/zonekit/po2zone/pkg/zoned"
)

// po2zone_report attaches the power-of-two zone emulation shim to a
// zoned block device and prints the zone report that clients of the
// shim would observe: uniform power-of-two sized zones with translated
// start addresses and write pointers.

func main() {
	start := pflag.Uint64("start", 0, "Logical sector at which reporting starts")
	count := pflag.Int("count", 0, "Maximum number of zones to report (0 means all)")
	metricsListenAddress := pflag.String("metrics.listen", "", "Address on which to serve Prometheus metrics after reporting; the process then stays up until terminated (empty disables)")
	pflag.Parse()
	if pflag.NArg() != 1 {
		log.Fatal("Usage: po2zone_report [flags] device")
	}

	backing, err := zoned.NewLocalDevice(pflag.Arg(0))
	if err != nil {
		log.Fatal("Failed to open backing device: ", err)
	}
	shim, err := po2zone.NewShim(backing, 0, backing.SectorCount())
	if err != nil {
		log.Fatal("Failed to attach to backing device: ", err)
	}
	router := po2zone.Router(shim)
	if *metricsListenAddress != "" {
		router = po2zone.NewMetricsRouter(router)
	}
	device := po2zone.NewBlockDevice(shim, router)

	geometry := shim.Geometry()
	fmt.Printf("physical zone size: %d sectors\n", geometry.ZoneSectors)
	fmt.Printf("emulated zone size: %d sectors (%d padding)\n", geometry.ZoneSectorsPo2, geometry.Diff)
	fmt.Printf("zones:              %d\n", geometry.ZoneCount)
	fmt.Printf("logical capacity:   %d sectors\n", geometry.LogicalSectorCount())

	zonesToReport := *count
	if zonesToReport == 0 {
		zonesToReport = int(geometry.ZoneCount)
	}
	if err := device.ReportZones(*start, zonesToReport, func(zone *zoned.Zone, index int) error {
		fmt.Printf("zone %8d: start %12d  len %8d  cap %8d  wp %12d  %s\n",
			geometry.LogicalZoneIndex(zone.Start), zone.Start, zone.Length, zone.Capacity, zone.WritePointer, zone.Condition)
		return nil
	}); err != nil {
		log.Fatal("Failed to report zones: ", err)
	}

	if *metricsListenAddress != "" {
		http.Handle("/metrics", promhttp.Handler())
		log.Fatal(http.ListenAndServe(*metricsListenAddress, nil))
	}
}
