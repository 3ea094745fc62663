package msconv_test

import (
	"fmt"

	"github.com/lucrnz/msconv"
)

func ExampleParseDuration() {
	for _, s := range []string{"1d", "2 days", "2.5 hrs", "-100"} {
		ms, err := msconv.ParseDuration(s)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(ms)
	}

	_, err := msconv.ParseDuration("100 xs")
	fmt.Println(err)

	// Output:
	// 86400000
	// 172800000
	// 9000000
	// -100
	// invalid postfix: " xs"
}

func ExampleFormatDurationAuto() {
	s, _ := msconv.FormatDurationAuto(2 * msconv.MsPerWeek)
	fmt.Println(s)

	l, _ := msconv.FormatDurationAutoLong(msconv.MsPerWeek)
	fmt.Println(l)

	// Output:
	// 14d
	// 7 days
}
