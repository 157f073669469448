package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier publishes provisioning failures that the custom resource reports as SUCCESS.
// A nil *Notifier is valid and publishes nothing.
type Notifier struct {
	client   Publisher
	topicARN string
}

func New(client Publisher, topicARN string) *Notifier {
	if client == nil || strings.TrimSpace(topicARN) == "" {
		return nil
	}
	return &Notifier{client: client, topicARN: topicARN}
}

func (n *Notifier) ProvisioningFailed(ctx context.Context, event cfn.Event, cause error) error {
	if n == nil || cause == nil {
		return nil
	}

	subject, message := buildMessage(event, cause)
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

func buildMessage(event cfn.Event, cause error) (subject string, body string) {
	subject = fmt.Sprintf("IMS Shopify integration: %s failed", event.RequestType)
	// SNS rejects subjects over 100 characters.
	if len(subject) > 100 {
		subject = subject[:100]
	}

	lines := []string{
		"Provisioning of the ShopifyIntegration data extension failed.",
		"The stack was told SUCCESS; the error below was only recorded as the reason.",
		"",
		fmt.Sprintf("RequestType: %s", event.RequestType),
		fmt.Sprintf("StackId: %s", event.StackID),
		fmt.Sprintf("LogicalResourceId: %s", event.LogicalResourceID),
		fmt.Sprintf("RequestId: %s", event.RequestID),
		fmt.Sprintf("Error: %v", cause),
		"",
		fmt.Sprintf("ReportedAt: %s", time.Now().UTC().Format(time.RFC3339)),
	}
	return subject, strings.Join(lines, "\n")
}
