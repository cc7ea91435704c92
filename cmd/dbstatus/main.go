package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/uptrace/bun/driver/pgdriver"
)

func main() {
	ctx := context.Background()
	fmt.Println("PostgreSQL Connection Status:")
	fmt.Println("=============================")

	lbIP := fetchLoadBalancerIP(ctx)
	if lbIP != "" {
		fmt.Printf("🌐 LoadBalancer detected - External IP: %s\n", lbIP)
		dsn := fmt.Sprintf("postgres://postgres:postgres@%s:5432/zakondex?sslmode=disable", lbIP)
		fmt.Printf("📍 Connection: %s\n\n", dsn)
		if err := probe(ctx, dsn); err != nil {
			fmt.Printf("❌ Database connection failed via LoadBalancer: %v\n", err)
		}
		return
	}

	_ = godotenv.Load("manifests/config.env")
	host := getenv("POSTGRES_HOST", "localhost")
	port := getenv("POSTGRES_PORT", "5432")
	dbName := getenv("POSTGRES_DB", "zakondex")
	user := getenv("POSTGRES_USER", "postgres")
	password := getenv("POSTGRES_PASSWORD", "postgres")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
	fmt.Printf("🏠 Local/Environment connection\n")
	fmt.Printf("📍 Connection: %s\n\n", dsn)
	if err := probe(ctx, dsn); err != nil {
		fmt.Printf("❌ Database connection failed: %v\n", err)
		os.Exit(1)
	}
}

func fetchLoadBalancerIP(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "kubectl", "get", "svc", "postgresql", "-o", "jsonpath={.status.loadBalancer.ingress[0].ip}")
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

func probe(ctx context.Context, dsn string) error {
	db, err := sql.Open("pg", dsn)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Printf("warning: closing connection: %v", cerr)
		}
	}()

	timeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(timeout); err != nil {
		return err
	}
	fmt.Println("✅ Database connection successful")

	reportSchema(timeout, db)
	return nil
}

func reportSchema(ctx context.Context, db *sql.DB) {
	var hasVector bool
	if err := db.QueryRowContext(ctx, `SELECT count(*) > 0 FROM pg_extension WHERE extname = 'vector'`).Scan(&hasVector); err != nil {
		fmt.Printf("❌ Extension check failed: %v\n", err)
		return
	}
	if !hasVector {
		fmt.Println("❌ pgvector extension missing - run 'dbctl migrate up'")
		return
	}
	fmt.Println("✅ pgvector extension installed")

	var hasTable bool
	if err := db.QueryRowContext(ctx, `SELECT count(*) > 0 FROM information_schema.tables WHERE table_name = 'statute_chunks'`).Scan(&hasTable); err != nil {
		fmt.Printf("❌ Table check failed: %v\n", err)
		return
	}
	if !hasTable {
		fmt.Println("❌ statute_chunks table missing - run 'dbctl migrate up'")
		return
	}
	fmt.Println("✅ statute_chunks table present")

	var chunks, documents int
	if err := db.QueryRowContext(ctx, `SELECT count(*), count(DISTINCT document_id) FROM statute_chunks`).Scan(&chunks, &documents); err != nil {
		fmt.Printf("❌ Count query failed: %v\n", err)
		return
	}
	fmt.Printf("📊 %d chunks across %d documents\n", chunks, documents)
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
