package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/KromaEnergia/farmacia/internal/catalogo"
	"github.com/KromaEnergia/farmacia/internal/menu"
	"github.com/KromaEnergia/farmacia/internal/terminal"
	"github.com/KromaEnergia/farmacia/internal/utils/db"
	"github.com/KromaEnergia/farmacia/internal/venda"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := db.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	term := terminal.NewConsole(os.Stdin, os.Stdout)
	m := menu.New(catalogo.NewService(database), venda.NewWorkflow(database), term)

	if err := m.Executar(ctx); err != nil {
		log.Fatal(err)
	}
}
