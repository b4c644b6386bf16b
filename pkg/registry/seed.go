// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Seed registers the builtin module catalog through the public Register API.
// Seeding is idempotent: a name that already exists is skipped and logged at
// debug level, while any other failure surfaces immediately instead of being
// swallowed.
func Seed(ctx context.Context, r *Registry, logger *log.Logger) error {
	for _, req := range Builtins() {
		_, err := r.Register(ctx, req)
		switch {
		case err == nil:
			logger.Debug("seeded builtin module", "name", req.Name, "provider", req.Provider)
		case errors.Is(err, ErrNameExists):
			logger.Debug("builtin module already present", "name", req.Name)
		default:
			return fmt.Errorf("seed builtin %q: %w", req.Name, err)
		}
	}
	return nil
}

// Builtins returns the registration requests for the builtin catalog.
func Builtins() []RegisterRequest {
	return []RegisterRequest{
		{
			Name:         "aws_ec2_instance",
			Provider:     "aws",
			ResourceType: "aws_instance",
			Version:      "2.1.0",
			Description:  "Provision an EC2 instance with configurable size, AMI, and networking.",
			HCLTemplate: `resource "aws_instance" "${var.name}" {
  ami           = "${var.ami_id}"
  instance_type = "${var.instance_type}"
  subnet_id     = "${var.subnet_id}"
  key_name      = "${var.key_name}"

  tags = {
    Name        = "${var.name}"
    Environment = "${var.environment}"
    ManagedBy   = "terraform"
  }

  root_block_device {
    volume_size           = ${var.root_volume_size}
    volume_type           = "gp3"
    delete_on_termination = true
    encrypted             = true
  }

  lifecycle {
    ignore_changes = [ami]
  }
}
`,
			Variables: []Variable{
				{Name: "name", Type: "string", Description: "Instance name tag", Required: true},
				{Name: "ami_id", Type: "string", Description: "AMI ID", Required: true},
				{Name: "instance_type", Type: "string", Description: "EC2 instance type", Default: String("t3.micro")},
				{Name: "subnet_id", Type: "string", Description: "Subnet ID", Required: true},
				{Name: "key_name", Type: "string", Description: "SSH key pair name", Default: String("")},
				{Name: "environment", Type: "string", Description: "Deployment environment", Default: String("dev")},
				{Name: "root_volume_size", Type: "number", Description: "Root EBS size (GB)", Default: Number(20)},
			},
			Outputs: []Output{
				{Name: "instance_id", Description: "EC2 instance ID", ValueExpression: "aws_instance.${var.name}.id"},
				{Name: "public_ip", Description: "Public IP address", ValueExpression: "aws_instance.${var.name}.public_ip"},
				{Name: "private_ip", Description: "Private IP address", ValueExpression: "aws_instance.${var.name}.private_ip"},
			},
			Examples: []Example{
				{
					Title:       "Basic web server",
					Description: "A minimal t3.small web server.",
					HCLCode: `module "web" {
  source        = "blackroad/aws_ec2_instance"
  name          = "web-prod"
  ami_id        = "ami-0abcdef1234567890"
  instance_type = "t3.small"
  subnet_id     = "subnet-12345678"
}`,
				},
			},
			Tags: []string{"aws", "ec2", "compute", "vm"},
		},
		{
			Name:         "aws_s3_bucket",
			Provider:     "aws",
			ResourceType: "aws_s3_bucket",
			Version:      "3.0.1",
			Description:  "Create an S3 bucket with versioning, encryption, and lifecycle rules.",
			HCLTemplate: `resource "aws_s3_bucket" "${var.bucket_name}" {
  bucket = "${var.bucket_name}"

  tags = {
    Name        = "${var.bucket_name}"
    Environment = "${var.environment}"
  }
}

resource "aws_s3_bucket_versioning" "${var.bucket_name}_versioning" {
  bucket = aws_s3_bucket.${var.bucket_name}.id

  versioning_configuration {
    status = "${var.versioning_enabled}"
  }
}

resource "aws_s3_bucket_server_side_encryption_configuration" "${var.bucket_name}_sse" {
  bucket = aws_s3_bucket.${var.bucket_name}.id

  rule {
    apply_server_side_encryption_by_default {
      sse_algorithm = "AES256"
    }
  }
}
`,
			Variables: []Variable{
				{Name: "bucket_name", Type: "string", Description: "Globally unique bucket name", Required: true},
				{Name: "environment", Type: "string", Description: "Environment tag", Default: String("dev")},
				{Name: "versioning_enabled", Type: "string", Description: "Enable versioning (Enabled/Suspended)", Default: String("Enabled")},
			},
			Outputs: []Output{
				{Name: "bucket_id", Description: "S3 bucket ID", ValueExpression: "aws_s3_bucket.${var.bucket_name}.id"},
				{Name: "bucket_arn", Description: "S3 bucket ARN", ValueExpression: "aws_s3_bucket.${var.bucket_name}.arn"},
			},
			Tags: []string{"aws", "s3", "storage", "object-storage"},
		},
		{
			Name:         "aws_rds_instance",
			Provider:     "aws",
			ResourceType: "aws_db_instance",
			Version:      "1.4.2",
			Description:  "Provision an RDS instance with automated backups, encryption, and multi-AZ support.",
			HCLTemplate: `resource "aws_db_instance" "${var.identifier}" {
  identifier              = "${var.identifier}"
  engine                  = "${var.engine}"
  engine_version          = "${var.engine_version}"
  instance_class          = "${var.instance_class}"
  allocated_storage       = ${var.allocated_storage}
  db_name                 = "${var.db_name}"
  username                = "${var.username}"
  password                = "${var.password}"
  multi_az                = ${var.multi_az}
  skip_final_snapshot     = false
  final_snapshot_identifier = "${var.identifier}-final"
  storage_encrypted       = true
  backup_retention_period = ${var.backup_retention_period}

  tags = {
    Name        = "${var.identifier}"
    Environment = "${var.environment}"
  }
}
`,
			Variables: []Variable{
				{Name: "identifier", Type: "string", Description: "RDS instance identifier", Required: true},
				{Name: "engine", Type: "string", Description: "Database engine", Default: String("postgres")},
				{Name: "engine_version", Type: "string", Description: "Engine version", Default: String("15.4")},
				{Name: "instance_class", Type: "string", Description: "Instance class", Default: String("db.t3.micro")},
				{Name: "allocated_storage", Type: "number", Description: "Storage in GB", Default: Number(20)},
				{Name: "db_name", Type: "string", Description: "Initial database name", Required: true},
				{Name: "username", Type: "string", Description: "Master username", Required: true},
				{Name: "password", Type: "string", Description: "Master password", Required: true, Sensitive: true},
				{Name: "multi_az", Type: "bool", Description: "Enable Multi-AZ", Default: Bool(false)},
				{Name: "backup_retention_period", Type: "number", Description: "Backup retention days", Default: Number(7)},
				{Name: "environment", Type: "string", Description: "Environment tag", Default: String("dev")},
			},
			Outputs: []Output{
				{Name: "endpoint", Description: "RDS endpoint", ValueExpression: "aws_db_instance.${var.identifier}.endpoint"},
				{Name: "port", Description: "RDS port", ValueExpression: "aws_db_instance.${var.identifier}.port"},
				{Name: "db_name", Description: "Database name", ValueExpression: "aws_db_instance.${var.identifier}.db_name"},
			},
			Tags: []string{"aws", "rds", "database", "postgres", "mysql"},
		},
		{
			Name:         "aws_vpc",
			Provider:     "aws",
			ResourceType: "aws_vpc",
			Version:      "2.0.0",
			Description:  "Create a VPC with public and private subnets, an internet gateway, and route tables.",
			HCLTemplate: `resource "aws_vpc" "${var.name}" {
  cidr_block           = "${var.cidr_block}"
  enable_dns_support   = true
  enable_dns_hostnames = true

  tags = {
    Name        = "${var.name}"
    Environment = "${var.environment}"
  }
}

resource "aws_internet_gateway" "${var.name}_igw" {
  vpc_id = aws_vpc.${var.name}.id

  tags = {
    Name = "${var.name}-igw"
  }
}
`,
			Variables: []Variable{
				{Name: "name", Type: "string", Description: "VPC name", Required: true},
				{Name: "cidr_block", Type: "string", Description: "CIDR block", Default: String("10.0.0.0/16")},
				{Name: "environment", Type: "string", Description: "Environment", Default: String("dev")},
			},
			Outputs: []Output{
				{Name: "vpc_id", Description: "VPC ID", ValueExpression: "aws_vpc.${var.name}.id"},
				{Name: "igw_id", Description: "Internet Gateway ID", ValueExpression: "aws_internet_gateway.${var.name}_igw.id"},
			},
			Tags: []string{"aws", "vpc", "networking"},
		},
		{
			Name:         "gcp_gce_instance",
			Provider:     "gcp",
			ResourceType: "google_compute_instance",
			Version:      "1.2.0",
			Description:  "Create a Google Compute Engine VM instance.",
			HCLTemplate: `resource "google_compute_instance" "${var.name}" {
  name         = "${var.name}"
  machine_type = "${var.machine_type}"
  zone         = "${var.zone}"

  boot_disk {
    initialize_params {
      image = "${var.image}"
      size  = ${var.disk_size_gb}
      type  = "pd-ssd"
    }
  }

  network_interface {
    network    = "${var.network}"
    subnetwork = "${var.subnetwork}"

    access_config {}
  }

  labels = {
    environment = "${var.environment}"
    managed_by  = "terraform"
  }
}
`,
			Variables: []Variable{
				{Name: "name", Type: "string", Description: "Instance name", Required: true},
				{Name: "machine_type", Type: "string", Description: "Machine type", Default: String("e2-medium")},
				{Name: "zone", Type: "string", Description: "GCP zone", Default: String("us-central1-a")},
				{Name: "image", Type: "string", Description: "Boot disk image", Default: String("debian-cloud/debian-11")},
				{Name: "disk_size_gb", Type: "number", Description: "Boot disk size", Default: Number(20)},
				{Name: "network", Type: "string", Description: "VPC network", Default: String("default")},
				{Name: "subnetwork", Type: "string", Description: "Subnetwork", Default: String("default")},
				{Name: "environment", Type: "string", Description: "Environment", Default: String("dev")},
			},
			Outputs: []Output{
				{Name: "instance_id", Description: "GCE instance ID", ValueExpression: "google_compute_instance.${var.name}.id"},
				{Name: "external_ip", Description: "External IP address", ValueExpression: "google_compute_instance.${var.name}.network_interface[0].access_config[0].nat_ip"},
			},
			Tags: []string{"gcp", "gce", "compute", "vm"},
		},
		{
			Name:         "gcp_gcs_bucket",
			Provider:     "gcp",
			ResourceType: "google_storage_bucket",
			Version:      "1.1.0",
			Description:  "Create a Google Cloud Storage bucket with lifecycle and uniform bucket-level access.",
			HCLTemplate: `resource "google_storage_bucket" "${var.name}" {
  name                        = "${var.name}"
  location                    = "${var.location}"
  storage_class               = "${var.storage_class}"
  uniform_bucket_level_access = true
  force_destroy               = ${var.force_destroy}

  versioning {
    enabled = ${var.versioning}
  }

  labels = {
    environment = "${var.environment}"
  }
}
`,
			Variables: []Variable{
				{Name: "name", Type: "string", Description: "Bucket name (globally unique)", Required: true},
				{Name: "location", Type: "string", Description: "GCS location", Default: String("US")},
				{Name: "storage_class", Type: "string", Description: "Storage class", Default: String("STANDARD")},
				{Name: "versioning", Type: "bool", Description: "Enable versioning", Default: Bool(true)},
				{Name: "force_destroy", Type: "bool", Description: "Force destroy", Default: Bool(false)},
				{Name: "environment", Type: "string", Description: "Environment tag", Default: String("dev")},
			},
			Outputs: []Output{
				{Name: "bucket_url", Description: "GCS bucket URL", ValueExpression: "google_storage_bucket.${var.name}.url"},
				{Name: "self_link", Description: "Self link", ValueExpression: "google_storage_bucket.${var.name}.self_link"},
			},
			Tags: []string{"gcp", "gcs", "storage", "object-storage"},
		},
		{
			Name:         "kubernetes_deployment",
			Provider:     "kubernetes",
			ResourceType: "kubernetes_deployment",
			Version:      "1.3.0",
			Description:  "Create a Kubernetes Deployment with configurable replicas, image, and resource limits.",
			HCLTemplate: `resource "kubernetes_deployment" "${var.name}" {
  metadata {
    name      = "${var.name}"
    namespace = "${var.namespace}"

    labels = {
      app = "${var.name}"
    }
  }

  spec {
    replicas = ${var.replicas}

    selector {
      match_labels = {
        app = "${var.name}"
      }
    }

    template {
      metadata {
        labels = {
          app = "${var.name}"
        }
      }

      spec {
        container {
          name  = "${var.name}"
          image = "${var.image}"

          port {
            container_port = ${var.container_port}
          }

          resources {
            limits = {
              cpu    = "${var.cpu_limit}"
              memory = "${var.memory_limit}"
            }
            requests = {
              cpu    = "${var.cpu_request}"
              memory = "${var.memory_request}"
            }
          }
        }
      }
    }
  }
}
`,
			Variables: []Variable{
				{Name: "name", Type: "string", Description: "Deployment name", Required: true},
				{Name: "namespace", Type: "string", Description: "Kubernetes namespace", Default: String("default")},
				{Name: "image", Type: "string", Description: "Container image", Required: true},
				{Name: "replicas", Type: "number", Description: "Number of replicas", Default: Number(2)},
				{Name: "container_port", Type: "number", Description: "Container port", Default: Number(8080)},
				{Name: "cpu_limit", Type: "string", Description: "CPU limit", Default: String("500m")},
				{Name: "memory_limit", Type: "string", Description: "Memory limit", Default: String("256Mi")},
				{Name: "cpu_request", Type: "string", Description: "CPU request", Default: String("100m")},
				{Name: "memory_request", Type: "string", Description: "Memory request", Default: String("128Mi")},
			},
			Outputs: []Output{
				{Name: "deployment_name", Description: "Deployment name", ValueExpression: "kubernetes_deployment.${var.name}.metadata[0].name"},
				{Name: "replicas", Description: "Current replica count", ValueExpression: "kubernetes_deployment.${var.name}.spec[0].replicas"},
			},
			Tags: []string{"kubernetes", "k8s", "deployment", "container"},
		},
		{
			Name:         "kubernetes_service",
			Provider:     "kubernetes",
			ResourceType: "kubernetes_service",
			Version:      "1.1.0",
			Description:  "Expose a Kubernetes Deployment via a LoadBalancer or ClusterIP Service.",
			HCLTemplate: `resource "kubernetes_service" "${var.name}" {
  metadata {
    name      = "${var.name}"
    namespace = "${var.namespace}"
  }

  spec {
    selector = {
      app = "${var.selector_app}"
    }

    type = "${var.service_type}"

    port {
      port        = ${var.port}
      target_port = ${var.target_port}
      protocol    = "TCP"
    }
  }
}
`,
			Variables: []Variable{
				{Name: "name", Type: "string", Description: "Service name", Required: true},
				{Name: "namespace", Type: "string", Description: "Kubernetes namespace", Default: String("default")},
				{Name: "selector_app", Type: "string", Description: "App label selector", Required: true},
				{Name: "service_type", Type: "string", Description: "Service type", Default: String("ClusterIP")},
				{Name: "port", Type: "number", Description: "Service port", Default: Number(80)},
				{Name: "target_port", Type: "number", Description: "Target container port", Default: Number(8080)},
			},
			Outputs: []Output{
				{Name: "service_name", Description: "Service name", ValueExpression: "kubernetes_service.${var.name}.metadata[0].name"},
				{Name: "cluster_ip", Description: "Cluster IP", ValueExpression: "kubernetes_service.${var.name}.spec[0].cluster_ip"},
				{Name: "load_balancer_ip", Description: "Load Balancer IP", ValueExpression: "kubernetes_service.${var.name}.status[0].load_balancer[0].ingress[0].ip"},
			},
			Tags: []string{"kubernetes", "k8s", "service", "networking"},
		},
	}
}
