package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	lib "github.com/mikeqfu/railwaycodes-utils"
	"github.com/mikeqfu/railwaycodes-utils/source"
	"github.com/mikeqfu/railwaycodes-utils/store"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	startELR := flag.String("start", "", "start ELR of a connection query")
	endELR := flag.String("end", "", "end ELR of a connection query")
	elr := flag.String("elr", "", "ELR whose mileage file to print as JSON")
	flag.Parse()

	_ = godotenv.Load()

	lib.InitLogging()
	if err := lib.LoadAppConfig(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			lib.Config.Server.Port = v
		}
	}

	client := source.NewClient(lib.Config.Source.BaseURL,
		time.Duration(lib.Config.Source.TimeoutMS)*time.Millisecond)
	fileStore := store.NewFileStore(client)
	if path := lib.Config.Store.DatabasePath; path != "" {
		db, err := store.OpenDB(path)
		if err != nil {
			log.Fatalf("store database: %v", err)
		}
		defer db.Close()
		fileStore.WithDB(db)
	}
	resolver := lib.NewResolver(fileStore)

	switch *mode {
	case "serve":
		lib.StartServer(resolver, fileStore)
		lib.HandleGracefulShutdown()
	case "oneshot":
		switch {
		case *elr != "":
			f, err := fileStore.MileageFile(*elr)
			if err != nil {
				log.Fatalf("mileage file %s: %v", *elr, err)
			}
			buf, _ := json.MarshalIndent(f, "", "  ")
			fmt.Println(string(buf))
		case *startELR != "" && *endELR != "":
			sm, em, err := resolver.ResolveConnection(*startELR, *endELR)
			if err != nil {
				log.Fatalf("resolve %s-%s: %v", *startELR, *endELR, err)
			}
			if sm == nil || em == nil {
				fmt.Printf("no connection point found between %s and %s\n", *startELR, *endELR)
				return
			}
			fmt.Printf("%s %s (%.4f mi)  %s %s (%.4f mi)\n",
				*startELR, sm, sm.Decimal(), *endELR, em, em.Decimal())
		default:
			log.Fatal("oneshot mode needs -elr, or -start and -end")
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
