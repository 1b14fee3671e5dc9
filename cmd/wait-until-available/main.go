package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080/healthz -max=120s
func main() {
	url := flag.String("url", "http://localhost:8080/healthz", "the health endpoint to poll")
	maxWait := flag.Duration("max", 0, "give up after this long, 0 waits forever")
	flag.Parse()

	totalWaitTime := 0 * time.Second
	for {
		res, err := http.Get(*url)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				fmt.Println(res.Status)
				return
			}
			fmt.Println(res.Status)
		} else {
			fmt.Println(err)
		}
		if *maxWait > 0 && totalWaitTime >= *maxWait {
			panic(fmt.Sprintf("%s not available after %s", *url, totalWaitTime))
		}
		totalWaitTime += 5 * time.Second
		fmt.Printf("Waiting %s", totalWaitTime)
		fmt.Println()
		time.Sleep(5 * time.Second)
	}
}
