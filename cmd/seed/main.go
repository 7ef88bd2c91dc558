// Command seed writes the starter knowledge base and, with -warm, fills
// the embedding cache so the first server start does not embed every bean.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"baristabox-be/internal/bootstrap"
	"baristabox-be/internal/config"
	"baristabox-be/internal/repository/implementation"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/database"
)

func main() {
	force := flag.Bool("force", false, "overwrite existing knowledge files")
	warm := flag.Bool("warm", false, "embed the knowledge base into the database cache (needs DB_CONNECTION_STRING)")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	files := implementation.KnowledgeFiles{
		BeansPath:           cfg.Knowledge.BeansPath,
		RecipesPath:         cfg.Knowledge.RecipesPath,
		TroubleshootingPath: cfg.Knowledge.TroubleshootingPath,
		TrainingDataPath:    cfg.Knowledge.TrainingDataPath,
	}

	if err := seedKnowledge(ctx, files, *force); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *warm {
		if err := warmCache(ctx, cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}
}

func seedKnowledge(ctx context.Context, files implementation.KnowledgeFiles, force bool) error {
	skeleton := map[string]string{
		files.BeansPath:           "[]\n",
		files.RecipesPath:         "[]\n",
		files.TroubleshootingPath: "{}\n",
		files.TrainingDataPath:    "text,problem\n",
	}
	for path := range skeleton {
		if _, err := os.Stat(path); err == nil && !force {
			log.Printf("Knowledge file %s already exists, skipping seed (use -force to overwrite)", path)
			return nil
		}
	}
	for path, content := range skeleton {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	store, err := implementation.OpenKnowledgeStore(files)
	if err != nil {
		return err
	}
	uow := unitofwork.NewRepositoryFactory(store).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, bean := range starterBeans {
		if err := uow.BeanRepository().Create(ctx, bean); err != nil {
			return fmt.Errorf("failed to seed bean %s: %w", bean.Id, err)
		}
	}
	for _, recipe := range starterRecipes {
		if err := uow.RecipeRepository().Create(ctx, recipe); err != nil {
			return fmt.Errorf("failed to seed recipe %s: %w", recipe.Id, err)
		}
	}
	for _, problem := range starterProblems {
		if err := uow.ProblemRepository().Create(ctx, problem); err != nil {
			return fmt.Errorf("failed to seed problem %s: %w", problem.Key, err)
		}
	}
	if _, err := uow.TrainingRepository().Add(ctx, starterTraining); err != nil {
		return fmt.Errorf("failed to seed training data: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return err
	}
	log.Printf("✅ Seeded %d beans, %d recipes, %d problems and %d training phrases",
		len(starterBeans), len(starterRecipes), len(starterProblems), len(starterTraining))
	return nil
}

func warmCache(ctx context.Context, cfg *config.Config) error {
	if cfg.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not set")
	}
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	container, err := bootstrap.NewContainer(ctx, cfg, bootstrap.Options{DB: db})
	if err != nil {
		return err
	}
	defer container.Close()

	status, err := container.IndexService.Rebuild(ctx)
	if err != nil {
		return err
	}
	log.Printf("✅ Embedded %d beans and %d problem phrases", status.FlavorMapBeans, status.ProblemExamples)
	return nil
}
