package main

import (
	"context"
	"log"
	"time"

	"github.com/muzzletov/tagparse"
)

func fetchHeadings() {
	client := tagparse.NewClient()
	client.SetTimeout(10 * time.Second)

	p, err := client.FetchParse(context.Background(), "https://example.com/")

	if err != nil {
		log.Fatal(err.Error())
		return
	}

	if !p.Success() {
		log.Fatal("document did not parse")
	}

	for _, h := range p.Query("body h1").Get() {
		println(h.InnerText())
	}

	for _, a := range p.Filter("a") {
		if href, ok := a.Attr("href"); ok {
			println(href)
		}
	}
}

func main() {
	fetchHeadings()
}
